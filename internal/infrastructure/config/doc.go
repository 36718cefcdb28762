// Package config provides configuration loading for the Smart Room core.
//
// Configuration is loaded from a YAML file with environment variable
// overrides (SMARTROOM_* pattern) and validated before use.
//
// # Loading Order
//
//  1. Hardcoded defaults (Default)
//  2. YAML file values
//  3. Environment variables
//
// # Usage
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.MQTT.Broker.Host)
package config
