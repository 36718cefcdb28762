package actuator

import (
	"strings"
	"testing"
	"time"

	"github.com/Clover-Hill/iot-project/internal/infrastructure/config"
	"github.com/Clover-Hill/iot-project/internal/message"
)

func comfortRanges() map[string]config.Range {
	return map[string]config.Range{
		"temperature": {Min: 20, Max: 24},
		"humidity":    {Min: 40, Max: 60},
		"light":       {Min: 300, Max: 700},
		"noise":       {Min: 0, Max: 45},
	}
}

func TestDecideNotify(t *testing.T) {
	tests := []struct {
		name           string
		readings       map[string]float64
		wantState      string
		wantViolations int
	}{
		{
			name:      "all in range",
			readings:  map[string]float64{"temperature": 22, "humidity": 50, "light": 500, "noise": 30},
			wantState: NotifyOK,
		},
		{
			name:      "no readings yet",
			readings:  nil,
			wantState: NotifyOK,
		},
		{
			name:           "single violation warns",
			readings:       map[string]float64{"temperature": 26, "humidity": 50},
			wantState:      NotifyWarning,
			wantViolations: 1,
		},
		{
			name:           "two violations alert",
			readings:       map[string]float64{"temperature": 26, "noise": 60},
			wantState:      NotifyAlert,
			wantViolations: 2,
		},
		{
			name:      "unknown sensor types are ignored",
			readings:  map[string]float64{"co2": 2000},
			wantState: NotifyOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, violations := decideNotify(snapshot(tt.readings), comfortRanges())
			if state != tt.wantState {
				t.Errorf("state = %q, want %q", state, tt.wantState)
			}
			if len(violations) != tt.wantViolations {
				t.Errorf("violations = %q, want %d", violations, tt.wantViolations)
			}
		})
	}
}

func TestNotifyConsolidatedAlert(t *testing.T) {
	notify := NewNotificationSystem("notify_01", comfortRanges())
	now := time.Now()

	snap := snapshot(map[string]float64{
		"temperature": 26,
		"humidity":    50,
		"noise":       60,
	})

	state, notes, ok := notify.Tick(snap, now)
	if !ok {
		t.Fatal("tick not ok")
	}
	if state.State != NotifyAlert {
		t.Fatalf("state = %q, want %q", state.State, NotifyAlert)
	}
	if len(notes) != 1 {
		t.Fatalf("got %d notifications, want 1 consolidated", len(notes))
	}

	note := notes[0]
	if note.Type != message.KindSystemNotification || note.Severity != message.SeverityAlert {
		t.Errorf("kind/severity = %q/%q", note.Type, note.Severity)
	}

	// Violation lines are sorted by sensor type for stable output.
	want := "Multiple comfort issues detected:\n" +
		"Noise is outside comfort range: 60\n" +
		"Temperature is outside comfort range: 26"
	if note.Message != want {
		t.Errorf("message = %q, want %q", note.Message, want)
	}
}

func TestNotifyWarningStaysSilent(t *testing.T) {
	notify := NewNotificationSystem("notify_01", comfortRanges())

	state, notes, ok := notify.Tick(snapshot(map[string]float64{"noise": 60}), time.Now())
	if !ok {
		t.Fatal("tick not ok")
	}
	if state.State != NotifyWarning {
		t.Errorf("state = %q, want %q", state.State, NotifyWarning)
	}
	if len(notes) != 0 {
		t.Errorf("single violation produced %d notifications, want 0", len(notes))
	}
}

func TestNotifyRecoversToOK(t *testing.T) {
	notify := NewNotificationSystem("notify_01", comfortRanges())
	now := time.Now()

	if _, _, ok := notify.Tick(snapshot(map[string]float64{"temperature": 26, "noise": 60}), now); !ok {
		t.Fatal("alert tick not ok")
	}
	if got := notify.State(); got != NotifyAlert {
		t.Fatalf("state = %q, want ALERT", got)
	}

	state, notes, _ := notify.Tick(snapshot(map[string]float64{"temperature": 22, "noise": 30}), now)
	if state.State != NotifyOK {
		t.Errorf("state = %q, want OK", state.State)
	}
	if len(notes) != 0 {
		t.Errorf("recovery produced notifications: %v", notes)
	}
}

func TestCapitalize(t *testing.T) {
	if got := capitalize("temperature"); got != "Temperature" {
		t.Errorf("capitalize = %q", got)
	}
	if got := capitalize(""); got != "" {
		t.Errorf("capitalize empty = %q", got)
	}
	if !strings.HasPrefix(capitalize("noise"), "N") {
		t.Error("capitalize did not upper-case first letter")
	}
}
