package mqtt

import (
	"errors"
	"testing"
)

func TestTopicBuilders(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"sensor", topics.Sensor("temperature"), "smartroom/sensors/temperature"},
		{"actuator", topics.Actuator("smart_light"), "smartroom/actuators/smart_light"},
		{"alerts", topics.Alerts(), "smartroom/actuators/alerts"},
		{"notifications", topics.Notifications(), "smartroom/actuators/notifications"},
		{"system notifications", topics.SystemNotifications(), "smartroom/actuators/system_notifications"},
		{"command", topics.Command("climate_control"), "smartroom/commands/climate_control"},
		{"system status", topics.SystemStatus(), "smartroom/system/status"},
		{"all sensors", topics.AllSensors(), "smartroom/sensors/+"},
		{"all commands", topics.AllCommands(), "smartroom/commands/+"},
		{"firehose", topics.All(), "smartroom/+/+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		topic        string
		wantCategory string
		wantType     string
		wantOK       bool
	}{
		{"smartroom/sensors/temperature", "sensors", "temperature", true},
		{"smartroom/actuators/smart_light", "actuators", "smart_light", true},
		{"smartroom/commands/focus_mode", "commands", "focus_mode", true},
		{"smartroom/actuators/alerts", "actuators", "alerts", true},
		{"smartroom/system", "", "", false},
		{"otherroot/sensors/temperature", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			category, deviceType, ok := Parse(tt.topic)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.topic, ok, tt.wantOK)
			}
			if category != tt.wantCategory || deviceType != tt.wantType {
				t.Errorf("Parse(%q) = (%q, %q), want (%q, %q)",
					tt.topic, category, deviceType, tt.wantCategory, tt.wantType)
			}
		})
	}
}

func TestPublishValidation(t *testing.T) {
	c := &Client{}

	if err := c.Publish("", []byte("x"), 1, false); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("empty topic: got %v, want ErrInvalidTopic", err)
	}
	if err := c.Publish("smartroom/sensors/temperature", []byte("x"), 3, false); !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("qos 3: got %v, want ErrInvalidQoS", err)
	}
	if err := c.Publish("smartroom/sensors/temperature", []byte("x"), 1, false); !errors.Is(err, ErrNotConnected) {
		t.Errorf("disconnected publish: got %v, want ErrNotConnected", err)
	}
}

func TestSubscribeValidation(t *testing.T) {
	c := &Client{subscriptions: make(map[string]subscription)}

	handler := func(string, []byte) error { return nil }

	if err := c.Subscribe("", 1, handler); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("empty topic: got %v, want ErrInvalidTopic", err)
	}
	if err := c.Subscribe("smartroom/sensors/+", 1, nil); !errors.Is(err, ErrSubscribeFailed) {
		t.Errorf("nil handler: got %v, want ErrSubscribeFailed", err)
	}
	if err := c.Subscribe("smartroom/sensors/+", 1, handler); !errors.Is(err, ErrNotConnected) {
		t.Errorf("disconnected subscribe: got %v, want ErrNotConnected", err)
	}

	if _, err := c.SubscribeChan("smartroom/sensors/+", 1, 0); !errors.Is(err, ErrSubscribeFailed) {
		t.Errorf("zero buffer: got %v, want ErrSubscribeFailed", err)
	}
}

func TestSubscriptionTracking(t *testing.T) {
	c := &Client{subscriptions: make(map[string]subscription)}

	if c.SubscriptionCount() != 0 {
		t.Errorf("initial SubscriptionCount = %d, want 0", c.SubscriptionCount())
	}
	if c.HasSubscription("smartroom/sensors/+") {
		t.Error("HasSubscription = true for untracked topic")
	}
}
