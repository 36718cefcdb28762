package gateway

import (
	"errors"
	"fmt"

	"github.com/Clover-Hill/iot-project/internal/infrastructure/logging"
	"github.com/Clover-Hill/iot-project/internal/infrastructure/mqtt"
)

// Router errors.
var (
	// ErrEmptyActuatorType is returned for a command with no target type.
	ErrEmptyActuatorType = errors.New("gateway: empty actuator type")
	// ErrEmptyCommand is returned for a command with no body.
	ErrEmptyCommand = errors.New("gateway: empty command")
)

// Publisher is the slice of the MQTT client the router needs.
type Publisher interface {
	PublishJSON(topic string, v any) error
}

// Router forwards control commands to actuator command topics.
//
// Commands pass through unmodified: the router does not validate them
// against an actuator registry, so success means the publish was
// accepted, not that any actuator consumed it.
type Router struct {
	bus    Publisher
	log    *logging.Logger
	topics mqtt.Topics
}

// NewRouter creates a command router.
func NewRouter(bus Publisher, log *logging.Logger) *Router {
	return &Router{
		bus: bus,
		log: log.With("component", "command_router"),
	}
}

// Send publishes a command to the given actuator type's command topic.
func (r *Router) Send(actuatorType string, cmd map[string]any) error {
	if actuatorType == "" {
		return ErrEmptyActuatorType
	}
	if len(cmd) == 0 {
		return ErrEmptyCommand
	}

	topic := r.topics.Command(actuatorType)
	if err := r.bus.PublishJSON(topic, cmd); err != nil {
		return fmt.Errorf("gateway: sending command to %s: %w", actuatorType, err)
	}
	r.log.Info("command sent", "actuator_type", actuatorType)
	return nil
}
