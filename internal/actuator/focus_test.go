package actuator

import (
	"testing"
	"time"
)

var focusTestParams = FocusParams{
	NoiseThreshold: 50,
	BreakAfter:     45 * time.Minute,
	MinSession:     5 * time.Minute,
}

func TestDecideFocusNoise(t *testing.T) {
	now := time.Now()

	st, msgs, ok := decideFocus(FocusState{State: FocusQuiet}, snapshot(map[string]float64{"noise": 65}), now, focusTestParams)
	if !ok {
		t.Fatal("decideFocus not ok with noise reading")
	}
	if st.State != FocusNoisy {
		t.Errorf("State = %q, want %q", st.State, FocusNoisy)
	}
	if len(msgs) != 1 || msgs[0] != "High noise level detected! Consider using headphones." {
		t.Errorf("messages = %q", msgs)
	}

	st, msgs, ok = decideFocus(st, snapshot(map[string]float64{"noise": 40}), now, focusTestParams)
	if !ok || st.State != FocusQuiet {
		t.Errorf("quiet room: State = %q ok=%v, want QUIET", st.State, ok)
	}
	if len(msgs) != 0 {
		t.Errorf("quiet room produced messages: %q", msgs)
	}

	if _, _, ok := decideFocus(st, snapshot(map[string]float64{"motion": 1}), now, focusTestParams); ok {
		t.Error("decideFocus ok without noise reading, want false")
	}
}

func TestDecideFocusSessionLifecycle(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	occupied := snapshot(map[string]float64{"noise": 40, "motion": 1})
	empty := snapshot(map[string]float64{"noise": 40})

	// Motion rising edge starts a session.
	st, msgs, _ := decideFocus(FocusState{State: FocusQuiet}, occupied, start, focusTestParams)
	if !st.SessionActive || !st.SessionStart.Equal(start) {
		t.Fatalf("session not started: %+v", st)
	}
	if len(msgs) != 1 || msgs[0] != "Study session started. Good luck!" {
		t.Fatalf("start messages = %q", msgs)
	}

	// Continued motion before the break threshold stays silent.
	st, msgs, _ = decideFocus(st, occupied, start.Add(20*time.Minute), focusTestParams)
	if len(msgs) != 0 {
		t.Errorf("mid-session messages = %q", msgs)
	}

	// Past the threshold the break reminder fires exactly once.
	st, msgs, _ = decideFocus(st, occupied, start.Add(46*time.Minute), focusTestParams)
	if len(msgs) != 1 || msgs[0] != "You've been studying for 45 minutes. Time for a break!" {
		t.Fatalf("break messages = %q", msgs)
	}
	st, msgs, _ = decideFocus(st, occupied, start.Add(50*time.Minute), focusTestParams)
	if len(msgs) != 0 {
		t.Errorf("break reminder repeated: %q", msgs)
	}

	// Motion falling edge ends the session and reports the duration.
	st, msgs, _ = decideFocus(st, empty, start.Add(62*time.Minute), focusTestParams)
	if st.SessionActive {
		t.Error("session still active after motion cleared")
	}
	if len(msgs) != 1 || msgs[0] != "Study session ended. Duration: 62 minutes" {
		t.Errorf("end messages = %q", msgs)
	}
}

func TestDecideFocusShortSessionUnreported(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	occupied := snapshot(map[string]float64{"noise": 40, "motion": 1})
	empty := snapshot(map[string]float64{"noise": 40})

	st, _, _ := decideFocus(FocusState{State: FocusQuiet}, occupied, start, focusTestParams)
	st, msgs, _ := decideFocus(st, empty, start.Add(3*time.Minute), focusTestParams)

	if st.SessionActive {
		t.Error("session still active")
	}
	if len(msgs) != 0 {
		t.Errorf("short session reported: %q", msgs)
	}
}
