package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	MQTTEnabled  bool
	MQTTBroker   string
	MQTTPort     int
	MQTTUser     string
	MQTTPassword string
	MQTTTopic    string

	AudioEnabled bool
	SampleRate   int
	BufferSize   int

	StateFile string

	NoiseWidth  int
	NoiseHeight int
	CacheSize   int

	OutputFile  string
	OutputScale int
	Coloring    string

	HTTPPort int
}

func Load() *Config {
	broker := getEnv("MQTT_BROKER", "localhost")
	if !strings.HasPrefix(broker, "tcp://") && !strings.HasPrefix(broker, "ssl://") {
		broker = "tcp://" + broker
	}

	cfg := &Config{
		MQTTEnabled:  getEnvBool("MQTT_ENABLED", true),
		MQTTBroker:   broker,
		MQTTPort:     getEnvInt("MQTT_PORT", 1883),
		MQTTUser:     getEnv("MQTT_USER", ""),
		MQTTPassword: getEnv("MQTT_PASSWORD", ""),
		MQTTTopic:    getEnv("MQTT_TOPIC", "homeassistant/perlin"),
		AudioEnabled: getEnvBool("AUDIO_ENABLED", false),
		SampleRate:   getEnvInt("SAMPLE_RATE", 44100),
		BufferSize:   getEnvInt("BUFFER_SIZE", 2048),
		StateFile:    getEnv("STATE_FILE", "/var/lib/perlin-noise/state.json"),
		NoiseWidth:   getEnvInt("NOISE_WIDTH", 512),
		NoiseHeight:  getEnvInt("NOISE_HEIGHT", 512),
		CacheSize:    getEnvInt("CACHE_SIZE", 16),
		OutputFile:   getEnv("OUTPUT_FILE", "/var/lib/perlin-noise/field.png"),
		OutputScale:  getEnvInt("OUTPUT_SCALE", 1),
		Coloring:     getEnv("COLORING", ""),
		HTTPPort:     getEnvInt("HTTP_PORT", 8080),
	}

	log.Printf("Config: MQTT=%s:%d (enabled=%v), Topic=%s, Field=%dx%d, HTTP=%d, Audio=%v",
		cfg.MQTTBroker, cfg.MQTTPort, cfg.MQTTEnabled, cfg.MQTTTopic,
		cfg.NoiseWidth, cfg.NoiseHeight, cfg.HTTPPort, cfg.AudioEnabled)
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Ignoring invalid %s=%q", key, value)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		log.Printf("Ignoring invalid %s=%q", key, value)
	}
	return defaultValue
}
