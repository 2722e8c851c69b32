package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/andyrewlee/glide/internal/config"
	"github.com/andyrewlee/glide/internal/motion"
	"github.com/andyrewlee/glide/internal/sim"
	"github.com/andyrewlee/glide/internal/ui/common"
	"github.com/andyrewlee/glide/internal/validation"
)

type simulateOptions struct {
	distance float64
	duration time.Duration
	samples  int
	content  float64
	view     float64
	start    float64
	fps      int
	platform string
	noBounce bool
	cancel   bool
	json     bool
	copy     bool
	stride   int
	realtime bool
}

// copyText is swapped in tests.
var copyText = common.CopyToClipboard

func buildSimulateCommand() *cobra.Command {
	opts := simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a synthetic drag and print every frame",
		Long: `Replay a straight drag through the motion engine on a simulated clock.

The gesture moves the pointer by --distance pixels over --duration in
--samples evenly spaced moves, then releases (or cancels). Positive distances
scroll toward the end of the content. Engine settings come from config.json
unless overridden by flags.

Examples:
  glide simulate --distance 300 --duration 120ms
  glide simulate --start 19000 --distance 400 --json
  glide simulate --no-bounce --platform ios --stride 5
  glide simulate --realtime --distance 600 --duration 200ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.distance, "distance", 300, "Pointer travel in pixels")
	f.DurationVar(&opts.duration, "duration", 120*time.Millisecond, "Gesture duration")
	f.IntVar(&opts.samples, "samples", 8, "Number of move events")
	f.Float64Var(&opts.content, "content", 20000, "Content length in pixels")
	f.Float64Var(&opts.view, "view", 800, "Viewport length in pixels")
	f.Float64Var(&opts.start, "start", 0, "Initial offset in pixels")
	f.IntVar(&opts.fps, "fps", 0, "Frame rate (default from config)")
	f.StringVar(&opts.platform, "platform", "", "Timing profile: default or ios (default from config)")
	f.BoolVar(&opts.noBounce, "no-bounce", false, "Disable over-scroll")
	f.BoolVar(&opts.cancel, "cancel", false, "Cancel the pointer instead of releasing it")
	f.BoolVar(&opts.json, "json", false, "Print JSON lines")
	f.BoolVar(&opts.copy, "copy", false, "Copy the summary line to the clipboard")
	f.IntVar(&opts.stride, "stride", 1, "Print every Nth frame in table output")
	f.BoolVar(&opts.realtime, "realtime", false, "Play the gesture in wall-clock time and stream frames")
	return cmd
}

func runSimulate(cmd *cobra.Command, opts simulateOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Motion.FPS = opts.fps
	}
	if flags.Changed("platform") {
		name := validation.SanitizeInput(opts.platform)
		if err := validation.ValidatePlatform(name); err != nil {
			return err
		}
		cfg.Motion.Platform = name
	}
	if err := validation.ValidateSurface(opts.content, opts.view, opts.start); err != nil {
		return err
	}
	if err := validation.ValidateGesture(opts.distance, opts.duration, opts.samples); err != nil {
		return err
	}
	if opts.noBounce {
		cfg.Motion.Bounce = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	surface := sim.Surface{Content: opts.content, View: opts.view, Offset: opts.start}
	gesture := sim.Gesture{Distance: opts.distance, Duration: opts.duration, Samples: opts.samples, Cancel: opts.cancel}
	out := cmd.OutOrStdout()

	var trace *sim.Trace
	if opts.realtime {
		trace, err = sim.RunLive(cmd.Context(), cfg.Motion.Options(), surface, gesture, func(f sim.Frame) {
			fmt.Fprintf(out, "%6dms %10.1f  %s\n", f.Elapsed.Milliseconds(), f.Offset, f.Phase)
		})
	} else {
		trace, err = sim.Run(cfg.Motion.Options(), surface, gesture)
	}
	if err != nil {
		return err
	}

	if opts.realtime {
		_, err = fmt.Fprintln(out, trace.Summary())
	} else if opts.json {
		err = trace.WriteJSON(out)
	} else {
		err = trace.WriteTable(out, opts.stride)
	}
	if err != nil {
		return err
	}

	if opts.copy {
		if err := copyText(trace.Summary()); err != nil {
			return fmt.Errorf("copy summary: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Summary copied to clipboard")
	}
	if !trace.Settled {
		return exitError{code: 2}
	}
	return nil
}

// platformNames lists the accepted --platform values.
func platformNames() []string {
	return []string{motion.PlatformDefault.String(), motion.PlatformIOS.String()}
}
