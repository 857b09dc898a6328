package main

import (
	"encoding/json"
	"math/rand"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/voltview/voltview/internal/config"
)

// reading mirrors the PZEM-004T fields the ingestor accepts.
type reading struct {
	Voltage     float64 `json:"voltage"`
	Current     float64 `json:"current"`
	Power       float64 `json:"power"`
	Energy      float64 `json:"energy"`
	Frequency   float64 `json:"frequency"`
	PowerFactor float64 `json:"power_factor"`
}

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker())
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	energy := 0.0
	for i := 0; i < 100; i++ {
		voltage := 220 + rand.Float64()*20
		current := 1 + rand.Float64()*5
		power := voltage * current
		energy += power / 1000 / 7200 // kWh over the 500ms tick

		r := reading{
			Voltage:     voltage,
			Current:     current,
			Power:       power,
			Energy:      energy,
			Frequency:   49.8 + rand.Float64()*0.4,
			PowerFactor: 0.85 + rand.Float64()*0.15,
		}
		payload, _ := json.Marshal(r)
		token := client.Publish(config.MQTTTopic(), 0, false, payload)
		token.Wait()
		time.Sleep(500 * time.Millisecond)
	}
	log.Info().Msg("simulation done")
}
