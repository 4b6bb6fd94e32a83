package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"MQTT_BROKER", "MQTT_ENABLED", "NOISE_WIDTH", "AUDIO_ENABLED", "HTTP_PORT"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.MQTTBroker != "tcp://localhost" {
		t.Errorf("MQTTBroker=%q", cfg.MQTTBroker)
	}
	if !cfg.MQTTEnabled || cfg.AudioEnabled {
		t.Errorf("MQTTEnabled=%v AudioEnabled=%v", cfg.MQTTEnabled, cfg.AudioEnabled)
	}
	if cfg.NoiseWidth != 512 || cfg.HTTPPort != 8080 {
		t.Errorf("NoiseWidth=%d HTTPPort=%d", cfg.NoiseWidth, cfg.HTTPPort)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MQTT_BROKER", "ssl://broker.lan")
	t.Setenv("MQTT_ENABLED", "false")
	t.Setenv("AUDIO_ENABLED", "1")
	t.Setenv("NOISE_WIDTH", "64")
	t.Setenv("CACHE_SIZE", "not-a-number")
	t.Setenv("COLORING", "mountain")

	cfg := Load()
	if cfg.MQTTBroker != "ssl://broker.lan" {
		t.Errorf("MQTTBroker=%q", cfg.MQTTBroker)
	}
	if cfg.MQTTEnabled || !cfg.AudioEnabled {
		t.Errorf("MQTTEnabled=%v AudioEnabled=%v", cfg.MQTTEnabled, cfg.AudioEnabled)
	}
	if cfg.NoiseWidth != 64 {
		t.Errorf("NoiseWidth=%d want 64", cfg.NoiseWidth)
	}
	if cfg.CacheSize != 16 {
		t.Errorf("CacheSize=%d want default 16", cfg.CacheSize)
	}
	if cfg.Coloring != "mountain" {
		t.Errorf("Coloring=%q", cfg.Coloring)
	}
}
