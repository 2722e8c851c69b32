package scrollview

import (
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/glide/internal/messages"
	"github.com/andyrewlee/glide/internal/ui/common"
)

// frameTimer adapts timedqueue.Timer to Bubble Tea. Each AfterFunc becomes
// a tick command carrying an id; the callback runs inside Update when the
// matching FrameTick arrives, so frames never race with input.
type frameTimer struct {
	owner   string
	next    uint64
	pending map[uint64]func()
	cmds    []tea.Cmd
}

func newFrameTimer(owner string) *frameTimer {
	return &frameTimer{owner: owner, pending: make(map[uint64]func())}
}

func (t *frameTimer) AfterFunc(d time.Duration, fn func()) {
	t.next++
	id := t.next
	t.pending[id] = fn
	owner := t.owner
	t.cmds = append(t.cmds, common.SafeTick(d, func(time.Time) tea.Msg {
		return messages.FrameTick{Owner: owner, ID: id}
	}))
}

// fire runs the callback armed under id. Unknown ids are ignored.
func (t *frameTimer) fire(id uint64) bool {
	fn, ok := t.pending[id]
	if !ok {
		return false
	}
	delete(t.pending, id)
	fn()
	return true
}

// drain hands the tick commands armed since the last call to the caller.
func (t *frameTimer) drain() []tea.Cmd {
	cmds := t.cmds
	t.cmds = nil
	return cmds
}

func (t *frameTimer) pendingIDs() []uint64 {
	ids := make([]uint64, 0, len(t.pending))
	for id := range t.pending {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
