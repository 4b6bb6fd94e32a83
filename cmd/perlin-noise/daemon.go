package main

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"image"
	"log"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/agusx1211/perlin-noise/internal/config"
	"github.com/agusx1211/perlin-noise/internal/generator"
	"github.com/agusx1211/perlin-noise/internal/mixer"
	"github.com/agusx1211/perlin-noise/internal/mqtt"
	"github.com/agusx1211/perlin-noise/internal/render"
	"github.com/agusx1211/perlin-noise/internal/state"
	"github.com/agusx1211/perlin-noise/internal/web"
)

type statePublisher interface {
	PublishState()
}

// daemon owns the current state and turns commands into new fields.
type daemon struct {
	mu sync.Mutex

	cfg       *config.Config
	gen       *generator.Generator
	mixer     *mixer.Mixer
	web       *web.Server
	publisher statePublisher

	state state.State
	image image.Image
}

func newDaemon(cfg *config.Config, gen *generator.Generator, m *mixer.Mixer, w *web.Server, st state.State) *daemon {
	return &daemon{cfg: cfg, gen: gen, mixer: m, web: w, state: st}
}

// State is safe to call from the MQTT client goroutines.
func (d *daemon) State() state.State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// apply updates the state for cmd. regenerate reports whether the field
// must be rebuilt; export whether the image should be written again.
func (d *daemon) apply(cmd mqtt.Command) (regenerate, export bool, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := d.state
	switch cmd.Action {
	case mqtt.ActionAlgorithm:
		a, err := generator.ParseAlgorithm(cmd.Text)
		if err != nil {
			return false, false, err
		}
		next.Algorithm = a
	case mqtt.ActionSeed:
		seed, err := strconv.ParseInt(cmd.Text, 10, 64)
		if err != nil {
			return false, false, fmt.Errorf("seed: %w", err)
		}
		next.Seed = seed
	case mqtt.ActionReseed:
		seed, err := randomSeed()
		if err != nil {
			return false, false, err
		}
		next.Seed = seed
	case mqtt.ActionFrequency:
		next.Frequency = cmd.Value
	case mqtt.ActionAmplitude:
		next.Amplitude = cmd.Value
	case mqtt.ActionOctaves:
		if cmd.Value != math.Trunc(cmd.Value) || math.Abs(cmd.Value) > math.MaxInt32 {
			return false, false, fmt.Errorf("octaves must be a whole number (got %v)", cmd.Value)
		}
		next.Octaves = int(cmd.Value)
	case mqtt.ActionLacunarity:
		next.Lacunarity = cmd.Value
	case mqtt.ActionPersistence:
		next.Persistence = cmd.Value
	case mqtt.ActionColoring:
		c, err := render.ParseColoring(cmd.Text)
		if err != nil {
			return false, false, err
		}
		next.Coloring = c
	case mqtt.ActionPreset:
		p := mqtt.FindPreset(cmd.Text)
		if p == nil {
			return false, false, fmt.Errorf("unknown preset %q", cmd.Text)
		}
		next.Params = p.Params(next.Seed)
		next.Coloring = p.Coloring
	case mqtt.ActionPowerOn:
		next.Power = true
	case mqtt.ActionPowerOff:
		next.Power = false
	case mqtt.ActionVolume:
		next.Volume = cmd.Value
	case mqtt.ActionPitch:
		next.Pitch = cmd.Value
	case mqtt.ActionBass:
		next.Bass = cmd.Value
	case mqtt.ActionTreble:
		next.Treble = cmd.Value
	case mqtt.ActionExport:
		return false, true, nil
	default:
		return false, false, fmt.Errorf("unknown action %q", cmd.Action)
	}

	if err := next.Params.Validate(); err != nil {
		return false, false, err
	}

	regenerate = next.Params != d.state.Params || next.Coloring != d.state.Coloring
	if regenerate && cmd.Action != mqtt.ActionPreset {
		next.Preset = state.CustomPreset
	}
	if cmd.Action == mqtt.ActionPreset {
		next.Preset = cmd.Text
	}

	// The mixer clamps, so read its values back into the state.
	next.Apply(d.mixer)
	next.Volume = d.mixer.GetVolume()
	next.Pitch = d.mixer.GetPitch()
	next.Bass = d.mixer.GetBass()
	next.Treble = d.mixer.GetTreble()

	d.state = next
	return regenerate, regenerate, nil
}

// regenerate selects the source for the current state, renders it,
// feeds the mixer and the preview, and returns the image.
func (d *daemon) regenerate(ctx context.Context) error {
	st := d.State()
	start := time.Now()

	src, changed, err := d.gen.Select(st.Params)
	if err != nil {
		return fmt.Errorf("select noise: %w", err)
	}
	if changed {
		d.mixer.SetSource(src)
	}

	img, err := render.ImageContext(ctx, src, st.Coloring)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.image = img
	d.mu.Unlock()

	if d.web != nil {
		if err := d.web.Update(st, img); err != nil {
			log.Printf("Failed to update preview: %v", err)
		}
	}

	stats := d.gen.Stats()
	log.Printf("Rendered %s (%s) in %v, cache hits base=%d improved=%d",
		st.Params.Describe(), st.Coloring, time.Since(start).Round(time.Millisecond),
		stats.Base.Hits, stats.Improved.Hits)
	return nil
}

func (d *daemon) export() error {
	d.mu.Lock()
	img := d.image
	d.mu.Unlock()

	if img == nil || d.cfg.OutputFile == "" {
		return nil
	}
	if err := render.Export(d.cfg.OutputFile, img, d.cfg.OutputScale); err != nil {
		return err
	}
	log.Printf("Exported %s", d.cfg.OutputFile)
	return nil
}

func (d *daemon) handle(ctx context.Context, cmd mqtt.Command) {
	regenerate, export, err := d.apply(cmd)
	if err != nil {
		log.Printf("Rejected %s: %v", cmd.Action, err)
		return
	}
	if regenerate {
		if err := d.regenerate(ctx); err != nil {
			log.Printf("Failed to regenerate field: %v", err)
			return
		}
	}
	if export {
		if err := d.export(); err != nil {
			log.Printf("Failed to export field: %v", err)
		}
	}
	if err := state.Save(d.cfg.StateFile, d.State()); err != nil {
		log.Printf("Failed to save state: %v", err)
	}
	if d.publisher != nil {
		d.publisher.PublishState()
	}
}

func (d *daemon) processCommands(ctx context.Context, cmdChan <-chan mqtt.Command) {
	stateTicker := time.NewTicker(2 * time.Second)
	defer stateTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-cmdChan:
			if !ok {
				return
			}
			d.handle(ctx, cmd)
		case <-stateTicker.C:
			if d.publisher != nil {
				d.publisher.PublishState()
			}
		}
	}
}

func randomSeed() (int64, error) {
	var seed int64
	if err := binary.Read(rand.Reader, binary.LittleEndian, &seed); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return seed, nil
}
