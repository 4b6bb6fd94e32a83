package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agusx1211/perlin-noise/internal/audio"
	"github.com/agusx1211/perlin-noise/internal/config"
	"github.com/agusx1211/perlin-noise/internal/generator"
	"github.com/agusx1211/perlin-noise/internal/mixer"
	"github.com/agusx1211/perlin-noise/internal/mqtt"
	"github.com/agusx1211/perlin-noise/internal/render"
	"github.com/agusx1211/perlin-noise/internal/state"
	"github.com/agusx1211/perlin-noise/internal/web"
)

func main() {
	cfg := config.Load()

	gen, err := generator.New(cfg.NoiseWidth, cfg.NoiseHeight, cfg.CacheSize)
	if err != nil {
		log.Fatalf("Failed to create generator: %v", err)
	}

	m := mixer.NewMixer(cfg.SampleRate)
	st := restoreState(cfg)
	st.Apply(m)

	webServer := web.NewServer()
	d := newDaemon(cfg, gen, m, webServer, st)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.regenerate(ctx); err != nil {
		log.Fatalf("Failed to render initial field: %v", err)
	}
	if err := d.export(); err != nil {
		log.Printf("Failed to export field: %v", err)
	}

	if cfg.AudioEnabled {
		player, err := audio.NewPlayer(cfg.SampleRate, cfg.BufferSize, 500*time.Millisecond)
		if err != nil {
			log.Fatalf("Failed to create audio player: %v", err)
		}
		defer player.Close()
		player.Start(m.Mix)
	}

	commandChan := make(chan mqtt.Command, 100)

	if cfg.MQTTEnabled {
		mqttClient, err := mqtt.NewClient(
			cfg.MQTTBroker,
			cfg.MQTTPort,
			cfg.MQTTUser,
			cfg.MQTTPassword,
			cfg.MQTTTopic,
			d.State,
			commandChan,
		)
		if err != nil {
			log.Fatalf("Failed to create MQTT client: %v", err)
		}
		defer mqttClient.Close()
		d.publisher = mqttClient
	}

	go func() {
		if err := webServer.Start(cfg.HTTPPort); err != nil {
			log.Printf("[web] server stopped: %v", err)
		}
	}()

	go d.processCommands(ctx, commandChan)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
}

func restoreState(cfg *config.Config) state.State {
	st, err := state.Load(cfg.StateFile)
	switch {
	case err == nil:
		log.Printf("Restored state: %s, coloring=%s, preset=%s, power=%v, volume=%.0f%%",
			st.Params.Describe(), st.Coloring, st.Preset, st.Power, st.Volume*100)
	case os.IsNotExist(err):
	default:
		log.Printf("Failed to restore state: %v", err)
	}

	if cfg.Coloring != "" {
		c, err := render.ParseColoring(cfg.Coloring)
		if err != nil {
			log.Printf("Ignoring COLORING: %v", err)
		} else {
			st.Coloring = c
		}
	}
	return st
}
