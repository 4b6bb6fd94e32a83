package mqtt

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/agusx1211/perlin-noise/internal/state"
)

const (
	ActionAlgorithm   = "set_algorithm"
	ActionSeed        = "set_seed"
	ActionReseed      = "reseed"
	ActionFrequency   = "set_frequency"
	ActionAmplitude   = "set_amplitude"
	ActionOctaves     = "set_octaves"
	ActionLacunarity  = "set_lacunarity"
	ActionPersistence = "set_persistence"
	ActionColoring    = "set_coloring"
	ActionPreset      = "set_preset"
	ActionPowerOn     = "set_power_on"
	ActionPowerOff    = "set_power_off"
	ActionVolume      = "set_volume"
	ActionPitch       = "set_pitch"
	ActionBass        = "set_bass"
	ActionTreble      = "set_treble"
	ActionExport      = "export"
)

// Command is a parsed control message. Numeric settings travel in Value,
// names and seeds in Text.
type Command struct {
	Action string
	Value  float64
	Text   string
}

// commandTopics maps a topic suffix under the base topic to its action.
var commandTopics = map[string]string{
	"algorithm/set":   ActionAlgorithm,
	"seed/set":        ActionSeed,
	"reseed/set":      ActionReseed,
	"frequency/set":   ActionFrequency,
	"amplitude/set":   ActionAmplitude,
	"octaves/set":     ActionOctaves,
	"lacunarity/set":  ActionLacunarity,
	"persistence/set": ActionPersistence,
	"coloring/set":    ActionColoring,
	"preset/set":      ActionPreset,
	"power/set":       ActionPowerOn,
	"volume/set":      ActionVolume,
	"pitch/set":       ActionPitch,
	"bass/set":        ActionBass,
	"treble/set":      ActionTreble,
	"export/set":      ActionExport,
}

// ParseCommand turns a payload received on <base>/<suffix> into a
// Command. ok is false for unknown topics and malformed payloads.
func ParseCommand(suffix, payload string) (cmd Command, ok bool) {
	action, known := commandTopics[suffix]
	if !known {
		return Command{}, false
	}
	payload = strings.TrimSpace(payload)

	switch action {
	case ActionPowerOn:
		if payload == "ON" {
			return Command{Action: ActionPowerOn}, true
		}
		return Command{Action: ActionPowerOff}, true
	case ActionReseed, ActionExport:
		return Command{Action: action}, true
	case ActionAlgorithm, ActionColoring, ActionPreset:
		if payload == "" {
			return Command{}, false
		}
		return Command{Action: action, Text: payload}, true
	case ActionSeed:
		if _, err := strconv.ParseInt(payload, 10, 64); err != nil {
			return Command{}, false
		}
		return Command{Action: action, Text: payload}, true
	}

	v, err := strconv.ParseFloat(payload, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Command{}, false
	}
	switch action {
	case ActionVolume:
		v /= 100
	case ActionOctaves:
		// Home Assistant may send whole numbers as "6.0".
		if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
			return Command{}, false
		}
	}
	return Command{Action: action, Value: v}, true
}

// StateFunc reports the state to publish.
type StateFunc func() state.State

type Client struct {
	client      mqtt.Client
	topic       string
	stateFn     StateFunc
	commandChan chan<- Command
}

func NewClient(broker string, port int, user, password, topic string, stateFn StateFunc, cmdChan chan<- Command) (*Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("%s:%d", broker, port))
	opts.SetClientID(fmt.Sprintf("perlin-noise-%d", time.Now().Unix()))

	if user != "" {
		opts.SetUsername(user)
	}
	if password != "" {
		opts.SetPassword(password)
	}

	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(30 * time.Second)

	c := &Client{
		topic:       topic,
		stateFn:     stateFn,
		commandChan: cmdChan,
	}

	opts.OnConnect = c.onConnect
	opts.OnConnectionLost = c.onConnectionLost
	opts.SetWill(c.availabilityTopic(), "offline", 0, true)

	c.client = mqtt.NewClient(opts)
	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}

	return c, nil
}

func (c *Client) availabilityTopic() string {
	return c.topic + "/availability"
}

func (c *Client) stateTopic() string {
	return c.topic + "/state"
}

func (c *Client) onConnect(client mqtt.Client) {
	log.Println("Connected to MQTT broker")

	client.Publish(c.availabilityTopic(), 0, true, "online")

	for suffix := range commandTopics {
		topic := c.topic + "/" + suffix
		if token := client.Subscribe(topic, 0, c.handler(suffix)); token.Wait() && token.Error() != nil {
			log.Printf("Failed to subscribe to %s: %v", topic, token.Error())
		}
	}

	c.publishDiscovery()
	c.PublishState()
}

func (c *Client) onConnectionLost(client mqtt.Client, err error) {
	log.Printf("MQTT connection lost: %v", err)
}

func (c *Client) handler(suffix string) mqtt.MessageHandler {
	return func(client mqtt.Client, msg mqtt.Message) {
		cmd, ok := ParseCommand(suffix, string(msg.Payload()))
		if !ok {
			log.Printf("Ignoring invalid payload on %s: %q", msg.Topic(), msg.Payload())
			return
		}
		c.sendCommand(cmd)
	}
}

func (c *Client) sendCommand(cmd Command) {
	select {
	case c.commandChan <- cmd:
	default:
		log.Println("Command channel full")
	}
}

func (c *Client) publishDiscovery() {
	entities := discoveryEntities(c.topic)
	for _, e := range entities {
		data, err := json.Marshal(e.config)
		if err != nil {
			log.Printf("Failed to encode discovery for %s: %v", e.id, err)
			continue
		}
		topic := fmt.Sprintf("homeassistant/%s/%s/config", e.domain, e.id)
		if token := c.client.Publish(topic, 0, true, data); token.Wait() && token.Error() != nil {
			log.Printf("Failed to publish discovery for %s: %v", e.id, token.Error())
		}
	}
	log.Printf("Published MQTT discovery (%d entities)", len(entities))
}

func (c *Client) PublishState() {
	data, err := json.Marshal(c.stateFn())
	if err != nil {
		log.Printf("Failed to encode state: %v", err)
		return
	}
	c.client.Publish(c.stateTopic(), 0, true, data)
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Publish(c.availabilityTopic(), 0, true, "offline")
		c.client.Disconnect(250)
	}
}
