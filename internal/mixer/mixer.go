package mixer

import (
	"math"
	"sync"

	"github.com/agusx1211/perlin-noise/internal/filter"
	"github.com/agusx1211/perlin-noise/internal/noise"
)

const (
	DefaultPitch = 110.0
	MinPitch     = 1.0
	MaxPitch     = 2000.0

	volumeSmoothing = 0.001
)

// Mixer sonifies a noise source. Each channel plays one scanline of the
// field as a looping waveform: left reads row y, right reads row y+1.
// After every full pass over the scanline y advances by one, so the sound
// drifts through the field.
type Mixer struct {
	mu sync.Mutex

	sampleRate int
	source     noise.Source

	power        bool
	masterVolume float64
	targetVolume float64
	pitch        float64
	bass         float64
	treble       float64

	phase float64
	row   int

	lowShelfL  *filter.Shelf
	lowShelfR  *filter.Shelf
	highShelfL *filter.Shelf
	highShelfR *filter.Shelf
}

func NewMixer(sampleRate int) *Mixer {
	rate := float64(sampleRate)
	return &Mixer{
		sampleRate:   sampleRate,
		masterVolume: 0.5,
		targetVolume: 0.5,
		pitch:        DefaultPitch,
		lowShelfL:    filter.NewShelf(filter.LowShelf, 300, 0, rate),
		lowShelfR:    filter.NewShelf(filter.LowShelf, 300, 0, rate),
		highShelfL:   filter.NewShelf(filter.HighShelf, 3000, 0, rate),
		highShelfR:   filter.NewShelf(filter.HighShelf, 3000, 0, rate),
	}
}

// SetSource swaps the field being played. The scan restarts at row 0.
func (m *Mixer) SetSource(src noise.Source) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.source = src
	m.phase = 0
	m.row = 0
}

func (m *Mixer) SetPower(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.power = on
}

func (m *Mixer) GetPower() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.power
}

func (m *Mixer) SetVolume(volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.targetVolume = clamp(volume, 0, 1)
}

func (m *Mixer) GetVolume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.targetVolume
}

// SetPitch sets how many times per second a scanline is played.
func (m *Mixer) SetPitch(hz float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pitch = clamp(hz, MinPitch, MaxPitch)
}

func (m *Mixer) GetPitch() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pitch
}

// sliderToGainDB maps -100..+100 to the shelf gain range.
func sliderToGainDB(slider float64) float64 {
	return slider / 100 * filter.MaxGainDB
}

func (m *Mixer) SetBass(value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bass = clamp(value, -100, 100)
	m.lowShelfL.SetGain(sliderToGainDB(m.bass))
	m.lowShelfR.SetGain(sliderToGainDB(m.bass))
}

func (m *Mixer) GetBass() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bass
}

func (m *Mixer) SetTreble(value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.treble = clamp(value, -100, 100)
	m.highShelfL.SetGain(sliderToGainDB(m.treble))
	m.highShelfR.SetGain(sliderToGainDB(m.treble))
}

func (m *Mixer) GetTreble() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.treble
}

// Mix returns samples stereo frames, interleaved left/right, in [-1, 1].
func (m *Mixer) Mix(samples int) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]float64, samples*2)

	if !m.power || m.source == nil || m.source.Width() == 0 {
		for i := 0; i < samples; i++ {
			m.masterVolume += (0 - m.masterVolume) * volumeSmoothing
		}
		return result
	}

	left := make([]float64, samples)
	right := make([]float64, samples)
	width := float64(m.source.Width())
	step := width * m.pitch / float64(m.sampleRate)

	for i := 0; i < samples; i++ {
		left[i] = m.sample(m.row)
		right[i] = m.sample(m.row + 1)

		m.phase += step
		for m.phase >= width {
			m.phase -= width
			m.row = (m.row + 1) % max(1, m.source.Height())
		}
	}

	m.lowShelfL.Process(left)
	m.highShelfL.Process(left)
	m.lowShelfR.Process(right)
	m.highShelfR.Process(right)

	for i := 0; i < samples; i++ {
		m.masterVolume += (m.targetVolume - m.masterVolume) * volumeSmoothing
		result[i*2] = clamp(left[i]*m.masterVolume, -1, 1)
		result[i*2+1] = clamp(right[i]*m.masterVolume, -1, 1)
	}
	return result
}

// sample reads the scanline at the current phase, interpolating between
// neighboring pixels so the waveform has no steps.
func (m *Mixer) sample(row int) float64 {
	width := m.source.Width()
	x0 := int(m.phase)
	frac := m.phase - float64(x0)
	a := m.source.ComputeAt(x0%width, row)
	b := m.source.ComputeAt((x0+1)%width, row)
	return a + frac*(b-a)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
