package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
)

// droneParams is what the presentation controls; the streamer glides toward it
type droneParams struct {
	pulseHz   float64
	amplitude float64
	warmth    float64 // 0..1, golden tint strength
}

// drone is a low sine carrier whose loudness breathes with the pulse
type drone struct {
	mu     sync.Mutex
	target droneParams
	cur    droneParams

	rate      beep.SampleRate
	carrierHz float64
	glide     float64 // per-sample smoothing coefficient

	carrier float64 // phase in [0,1)
	fifth   float64
	lfo     float64
	fade    float64 // start-up fade in [0,1]
	fadeInc float64
	stopped bool
}

func newDrone(cfg Config) *drone {
	rate := beep.SampleRate(cfg.SampleRate)
	p := droneParams{pulseHz: 0.12, amplitude: 0.02}
	return &drone{
		target:    p,
		cur:       p,
		rate:      rate,
		carrierHz: cfg.CarrierHz,
		glide:     1 - math.Exp(-1/(cfg.GlideSeconds*float64(rate))),
		fadeInc:   1 / float64(rate.N(cfg.FadeIn)+1),
	}
}

func (d *drone) set(fn func(p *droneParams)) {
	d.mu.Lock()
	fn(&d.target)
	d.mu.Unlock()
}

func (d *drone) stop() {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
}

func (d *drone) Stream(samples [][2]float64) (n int, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return 0, false
	}

	sr := float64(d.rate)
	for i := range samples {
		d.cur.pulseHz += (d.target.pulseHz - d.cur.pulseHz) * d.glide
		d.cur.amplitude += (d.target.amplitude - d.cur.amplitude) * d.glide
		d.cur.warmth += (d.target.warmth - d.cur.warmth) * d.glide
		if d.fade < 1 {
			d.fade = math.Min(1, d.fade+d.fadeInc)
		}

		// Breath depth grows with the pulse amplitude
		depth := math.Min(0.9, d.cur.amplitude*6)
		breath := 1 - depth*(0.5-0.5*math.Sin(2*math.Pi*d.lfo))

		val := math.Sin(2*math.Pi*d.carrier) + d.cur.warmth*0.5*math.Sin(2*math.Pi*d.fifth)
		val *= breath * d.fade / (1 + d.cur.warmth*0.5)

		samples[i][0] = val
		samples[i][1] = val

		d.carrier = advance(d.carrier, d.carrierHz/sr)
		d.fifth = advance(d.fifth, d.carrierHz*1.5/sr)
		d.lfo = advance(d.lfo, d.cur.pulseHz/sr)
	}
	return len(samples), true
}

func (d *drone) Err() error { return nil }

// advance steps a phase in [0,1)
func advance(phase, inc float64) float64 {
	phase += inc
	return phase - math.Floor(phase)
}
