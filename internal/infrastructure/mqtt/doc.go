// Package mqtt provides the Smart Room bus client.
//
// It wraps paho.mqtt.golang with connection management, capped-backoff
// initial connection, automatic subscription restoration on reconnect,
// topic builders for the smartroom/* hierarchy, and channel-based
// subscriptions for component consumption loops.
//
// # Topic Scheme
//
// All room traffic follows smartroom/{category}/{type}:
//
//	smartroom/sensors/temperature      sensor readings
//	smartroom/actuators/smart_light    actuator state
//	smartroom/actuators/alerts         high-priority alerts
//	smartroom/commands/smart_light     manual actuator commands
//	smartroom/system/status            component online/offline status
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT, "smartroom-core")
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	readings, err := client.SubscribeChan(mqtt.Topics{}.AllSensors(), 1, 64)
//
// # Delivery Semantics
//
// The bus is best-effort, at-most-once: there is no cross-topic ordering
// guarantee and channel subscriptions drop messages when the consumer's
// buffer is full. Components must tolerate missing messages.
package mqtt
