package config

import "github.com/spf13/viper"

func Load() error {
	// API Configuration
	viper.SetDefault("API_ADDR", ":4000")

	// Storage Configuration
	viper.SetDefault("DB_PATH", "./voltview.db")
	viper.SetDefault("REPORT_DIR", "./reports")

	// Sensor feed Configuration
	viper.SetDefault("MQTT_BROKER", "tcp://localhost:1883")
	viper.SetDefault("MQTT_TOPIC", "voltview/readings")

	// Demo login seeded at bootstrap when absent
	viper.SetDefault("DEMO_USER", "demo")
	viper.SetDefault("DEMO_PASSWORD", "demo123")

	viper.AutomaticEnv()
	return nil
}

func APIAddr() string      { return viper.GetString("API_ADDR") }
func DBPath() string       { return viper.GetString("DB_PATH") }
func ReportDir() string    { return viper.GetString("REPORT_DIR") }
func MQTTBroker() string   { return viper.GetString("MQTT_BROKER") }
func MQTTTopic() string    { return viper.GetString("MQTT_TOPIC") }
func DemoUser() string     { return viper.GetString("DEMO_USER") }
func DemoPassword() string { return viper.GetString("DEMO_PASSWORD") }
