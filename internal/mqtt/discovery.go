package mqtt

import (
	"github.com/agusx1211/perlin-noise/internal/generator"
	"github.com/agusx1211/perlin-noise/internal/mixer"
	"github.com/agusx1211/perlin-noise/internal/render"
	"github.com/agusx1211/perlin-noise/internal/state"
)

type entity struct {
	domain string
	id     string
	config map[string]any
}

// discoveryEntities describes every Home Assistant entity the daemon
// exposes under base.
func discoveryEntities(base string) []entity {
	device := map[string]any{
		"identifiers":  []string{"perlin_noise_generator"},
		"name":         "Perlin Noise Generator",
		"manufacturer": "Perlin Noise",
		"model":        "Noise Field",
	}
	availability := map[string]any{
		"topic": base + "/availability",
	}
	stateTopic := base + "/state"

	common := func(id, name, command, icon string) map[string]any {
		return map[string]any{
			"name":          name,
			"unique_id":     id,
			"device":        device,
			"availability":  availability,
			"command_topic": base + "/" + command + "/set",
			"icon":          icon,
		}
	}
	stateful := func(id, name, command, icon, template string) map[string]any {
		cfg := common(id, name, command, icon)
		cfg["state_topic"] = stateTopic
		cfg["value_template"] = template
		return cfg
	}
	number := func(id, name, command, icon, template string, lo, hi, step float64) map[string]any {
		cfg := stateful(id, name, command, icon, template)
		cfg["min"] = lo
		cfg["max"] = hi
		cfg["step"] = step
		cfg["mode"] = "box"
		return cfg
	}

	algorithms := make([]string, 0, len(generator.Algorithms))
	for _, a := range generator.Algorithms {
		algorithms = append(algorithms, string(a))
	}
	colorings := make([]string, 0, len(render.Colorings))
	for _, c := range render.Colorings {
		colorings = append(colorings, string(c))
	}
	presets := make([]string, 0, len(Presets)+1)
	for _, p := range Presets {
		presets = append(presets, p.Name)
	}
	presets = append(presets, state.CustomPreset)

	algorithm := stateful("perlin_noise_algorithm", "Algorithm", "algorithm", "mdi:function-variant", "{{ value_json.algorithm }}")
	algorithm["options"] = algorithms

	coloring := stateful("perlin_noise_coloring", "Coloring", "coloring", "mdi:palette", "{{ value_json.coloring }}")
	coloring["options"] = colorings

	preset := stateful("perlin_noise_preset", "Preset", "preset", "mdi:terrain", "{{ value_json.preset }}")
	preset["options"] = presets

	seed := stateful("perlin_noise_seed", "Seed", "seed", "mdi:dice-multiple", "{{ value_json.seed }}")
	seed["pattern"] = "-?[0-9]+"

	power := stateful("perlin_noise_power", "Sonify", "power", "mdi:power", "{% if value_json.power %}ON{% else %}OFF{% endif %}")
	power["payload_on"] = "ON"
	power["payload_off"] = "OFF"

	volume := number("perlin_noise_volume", "Volume", "volume", "mdi:volume-high",
		"{{ (value_json.volume * 100) | round(0) }}", 0, 100, 1)
	volume["unit_of_measurement"] = "%"
	volume["mode"] = "slider"

	pitch := number("perlin_noise_pitch", "Pitch", "pitch", "mdi:sine-wave",
		"{{ value_json.pitch }}", mixer.MinPitch, mixer.MaxPitch, 1)
	pitch["unit_of_measurement"] = "Hz"

	return []entity{
		{"select", "perlin_noise_algorithm", algorithm},
		{"select", "perlin_noise_coloring", coloring},
		{"select", "perlin_noise_preset", preset},
		{"text", "perlin_noise_seed", seed},
		{"number", "perlin_noise_frequency", number("perlin_noise_frequency", "Frequency", "frequency", "mdi:grid",
			"{{ value_json.frequency }}", 0, 1, 0.0005)},
		{"number", "perlin_noise_amplitude", number("perlin_noise_amplitude", "Amplitude", "amplitude", "mdi:arrow-expand-vertical",
			"{{ value_json.amplitude }}", 0, 4, 0.05)},
		{"number", "perlin_noise_octaves", number("perlin_noise_octaves", "Octaves", "octaves", "mdi:layers-triple",
			"{{ value_json.octaves }}", 1, 12, 1)},
		{"number", "perlin_noise_lacunarity", number("perlin_noise_lacunarity", "Lacunarity", "lacunarity", "mdi:arrow-expand-horizontal",
			"{{ value_json.lacunarity }}", 1, 4, 0.05)},
		{"number", "perlin_noise_persistence", number("perlin_noise_persistence", "Persistence", "persistence", "mdi:chart-bell-curve",
			"{{ value_json.persistence }}", 0, 1, 0.05)},
		{"switch", "perlin_noise_power", power},
		{"number", "perlin_noise_volume", volume},
		{"number", "perlin_noise_pitch", pitch},
		{"number", "perlin_noise_bass", number("perlin_noise_bass", "Bass", "bass", "mdi:music-clef-bass",
			"{{ value_json.bass | round(0) }}", -100, 100, 1)},
		{"number", "perlin_noise_treble", number("perlin_noise_treble", "Treble", "treble", "mdi:music-clef-treble",
			"{{ value_json.treble | round(0) }}", -100, 100, 1)},
		{"button", "perlin_noise_reseed", common("perlin_noise_reseed", "New Seed", "reseed", "mdi:dice-5")},
		{"button", "perlin_noise_export", common("perlin_noise_export", "Export Image", "export", "mdi:content-save")},
	}
}
