package actuator

import (
	"time"

	"github.com/Clover-Hill/iot-project/internal/infrastructure/config"
)

// Build constructs the room's actuator set from configuration.
// Order is stable: light, climate, focus, notification system.
func Build(cfg *config.Config) []Actuator {
	return []Actuator{
		NewSmartLight(cfg.Actuators.Light.ID, cfg.Actuators.Light.AutoMode),
		NewClimateControl(cfg.Actuators.Climate.ID,
			cfg.Actuators.Climate.TargetTemp, cfg.Actuators.Climate.TargetHumidity),
		NewFocusMode(cfg.Actuators.Focus.ID, FocusParams{
			NoiseThreshold: cfg.Actuators.Focus.NoiseThreshold,
			BreakAfter:     time.Duration(cfg.Actuators.Focus.BreakAfterMinutes) * time.Minute,
			MinSession:     time.Duration(cfg.Actuators.Focus.MinSessionMinutes) * time.Minute,
		}),
		NewNotificationSystem(cfg.Gateway.NotifierID, cfg.Comfort.Ranges),
	}
}
