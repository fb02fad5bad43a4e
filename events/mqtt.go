package events

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// StartMQTTBridge connects to the broker named by rawURL (the path is
// the topic prefix, defaulting to "tasks") and republishes every event
// from the hub as JSON on <prefix>/events. It returns a stop func.
func StartMQTTBridge(rawURL string, hub *Broker) (func(), error) {
	uri, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid MQTT_URL: %w", err)
	}

	prefix := "tasks"
	if len(uri.Path) > 1 {
		prefix = uri.Path[1:]
	}
	topic := prefix + "/events"

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", uri.Host))
	opts.SetClientID("task-system-pub")

	client := mqtt.NewClient(opts)
	connect := client.Connect()
	for !connect.WaitTimeout(3 * time.Second) {
	}
	if err := connect.Error(); err != nil {
		return nil, fmt.Errorf("could not connect to MQTT broker: %w", err)
	}

	ch, cancel := hub.Subscribe()
	go func() {
		for ev := range ch {
			payload, err := json.Marshal(ev)
			if err != nil {
				log.Printf("mqtt bridge: marshal event: %v", err)
				continue
			}
			client.Publish(topic, 0, false, payload)
		}
	}()

	stop := func() {
		cancel()
		client.Disconnect(250)
	}
	return stop, nil
}
