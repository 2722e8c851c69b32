package scrollview

import "testing"

func TestFrameTimer(t *testing.T) {
	timer := newFrameTimer("v")
	fired := 0
	timer.AfterFunc(0, func() { fired++ })
	timer.AfterFunc(0, func() { fired += 10 })

	if cmds := timer.drain(); len(cmds) != 2 {
		t.Fatalf("expected 2 tick commands, got %d", len(cmds))
	}
	if cmds := timer.drain(); len(cmds) != 0 {
		t.Fatal("expected drain to reset")
	}

	ids := timer.pendingIDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("unexpected ids %v", ids)
	}
	if !timer.fire(2) || fired != 10 {
		t.Fatalf("expected second callback, fired=%d", fired)
	}
	if timer.fire(2) {
		t.Fatal("expected callback to run once")
	}
	timer.fire(1)
	if fired != 11 {
		t.Fatalf("expected both callbacks, fired=%d", fired)
	}
}
