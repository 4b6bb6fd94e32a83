package audio

import (
	"encoding/binary"
	"math"
	"sync"
	"time"

	oto "github.com/ebitengine/oto/v3"
)

// MixFunc returns frames*2 interleaved stereo samples.
type MixFunc func(frames int) []float64

const bytesPerSample = 4

// Player streams a MixFunc to the default output device as float32 stereo.
type Player struct {
	context    *oto.Context
	player     *oto.Player
	sampleRate int
	bufferSize int
	stopChan   chan struct{}
	stopOnce   sync.Once
}

func NewPlayer(sampleRate, bufferSize int, latency time.Duration) (*Player, error) {
	otoContext, readyChan, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   latency,
	})
	if err != nil {
		return nil, err
	}

	<-readyChan

	return &Player{
		context:    otoContext,
		sampleRate: sampleRate,
		bufferSize: bufferSize,
		stopChan:   make(chan struct{}),
	}, nil
}

func (p *Player) Start(mixFn MixFunc) {
	p.player = p.context.NewPlayer(newStreamReader(mixFn, p.bufferSize, p.stopChan))
	p.player.Play()
}

func (p *Player) Stop() {
	p.stopOnce.Do(func() { close(p.stopChan) })
	if p.player != nil {
		p.player.Pause()
	}
}

// Close stops playback and suspends the output device.
func (p *Player) Close() error {
	p.Stop()
	return p.context.Suspend()
}

// streamReader adapts a MixFunc to the io.Reader oto pulls from.
type streamReader struct {
	mixFn    MixFunc
	frames   int
	stopChan <-chan struct{}
	buffer   []byte
	pos      int
}

func newStreamReader(mixFn MixFunc, frames int, stop <-chan struct{}) *streamReader {
	return &streamReader{mixFn: mixFn, frames: frames, stopChan: stop}
}

func (r *streamReader) Read(buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		if r.pos >= len(r.buffer) {
			select {
			case <-r.stopChan:
				return n, nil
			default:
			}
			r.buffer = encodeFloat32LE(r.buffer[:0], r.mixFn(r.frames))
			r.pos = 0
			if len(r.buffer) == 0 {
				return n, nil
			}
		}
		copied := copy(buf[n:], r.buffer[r.pos:])
		r.pos += copied
		n += copied
	}
	return n, nil
}

// encodeFloat32LE appends samples, clamped to [-1, 1], to dst.
func encodeFloat32LE(dst []byte, samples []float64) []byte {
	for _, s := range samples {
		bits := math.Float32bits(float32(math.Max(-1, math.Min(1, s))))
		dst = binary.LittleEndian.AppendUint32(dst, bits)
	}
	return dst
}
