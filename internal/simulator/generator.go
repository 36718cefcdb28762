package simulator

import (
	"math"
	"math/rand"
	"time"

	"github.com/Clover-Hill/iot-project/internal/message"
)

// Generator produces one simulated sensor's readings.
type Generator interface {
	ID() string
	Type() string
	Unit() string
	// Next produces the next value. Generators are stateful random walks;
	// now drives the time-of-day effects.
	Next(now time.Time) float64
}

// round2 rounds to two decimal places, the precision the room publishes.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// walk is a bounded random walk shared by the scalar generators: a step of
// ±2 per reading, clamped to [min, max], plus ±0.5 measurement noise.
type walk struct {
	min, max float64
	value    float64
	rng      *rand.Rand
}

func newWalk(min, max float64, rng *rand.Rand) walk {
	return walk{min: min, max: max, value: (min + max) / 2, rng: rng}
}

func (w *walk) step() float64 {
	w.value += w.rng.Float64()*4 - 2
	if w.value < w.min {
		w.value = w.min
	}
	if w.value > w.max {
		w.value = w.max
	}
	return round2(w.value + (w.rng.Float64() - 0.5))
}

// Temperature simulates room temperature: a random walk in [18, 28] with a
// slow day/night drift of up to +3 during the day and -2 at night.
type Temperature struct {
	walk
	id     string
	effect float64
}

// NewTemperature creates a temperature generator.
func NewTemperature(id string, rng *rand.Rand) *Temperature {
	return &Temperature{walk: newWalk(18, 28, rng), id: id}
}

func (t *Temperature) ID() string   { return t.id }
func (t *Temperature) Type() string { return message.SensorTemperature }
func (t *Temperature) Unit() string { return "°C" }

func (t *Temperature) Next(now time.Time) float64 {
	hour := now.Hour()
	if hour >= 6 && hour <= 18 {
		t.effect = math.Min(3, t.effect+0.1)
	} else {
		t.effect = math.Max(-2, t.effect-0.1)
	}
	return round2(t.step() + t.effect)
}

// Humidity simulates relative humidity as a random walk in [30, 70].
type Humidity struct {
	walk
	id string
}

// NewHumidity creates a humidity generator.
func NewHumidity(id string, rng *rand.Rand) *Humidity {
	return &Humidity{walk: newWalk(30, 70, rng), id: id}
}

func (h *Humidity) ID() string             { return h.id }
func (h *Humidity) Type() string           { return message.SensorHumidity }
func (h *Humidity) Unit() string           { return "%" }
func (h *Humidity) Next(time.Time) float64 { return h.step() }

// Light simulates ambient light by time-of-day band with ±50 lux jitter
// for clouds and shadows.
type Light struct {
	id  string
	rng *rand.Rand
}

// NewLight creates a light generator.
func NewLight(id string, rng *rand.Rand) *Light {
	return &Light{id: id, rng: rng}
}

func (l *Light) ID() string   { return l.id }
func (l *Light) Type() string { return message.SensorLight }
func (l *Light) Unit() string { return "lux" }

func (l *Light) Next(now time.Time) float64 {
	uniform := func(min, max float64) float64 {
		return min + l.rng.Float64()*(max-min)
	}

	var base float64
	switch hour := now.Hour(); {
	case hour >= 6 && hour <= 8: // early morning
		base = uniform(100, 300)
	case hour >= 9 && hour <= 17: // daytime
		base = uniform(400, 800)
	case hour >= 18 && hour <= 20: // evening
		base = uniform(200, 400)
	default: // night
		base = uniform(0, 100)
	}
	return round2(base + uniform(-50, 50))
}

// Noise simulates ambient noise as a random walk in [30, 80] dB with a 10%
// chance of a spike per reading.
type Noise struct {
	walk
	id string
}

// NewNoise creates a noise generator.
func NewNoise(id string, rng *rand.Rand) *Noise {
	return &Noise{walk: newWalk(30, 80, rng), id: id}
}

func (n *Noise) ID() string   { return n.id }
func (n *Noise) Type() string { return message.SensorNoise }
func (n *Noise) Unit() string { return "dB" }

func (n *Noise) Next(time.Time) float64 {
	base := n.step()
	if n.rng.Float64() < 0.1 {
		spike := 10 + n.rng.Float64()*20
		return round2(math.Min(n.max, base+spike))
	}
	return base
}

// Motion simulates occupancy as presence periods: once motion starts it
// persists for 10 to 30 readings, and new periods start with probability
// 0.7 during study hours (9 to 22) and 0.1 otherwise.
type Motion struct {
	id        string
	rng       *rand.Rand
	remaining int
}

// NewMotion creates a motion generator.
func NewMotion(id string, rng *rand.Rand) *Motion {
	return &Motion{id: id, rng: rng}
}

func (m *Motion) ID() string   { return m.id }
func (m *Motion) Type() string { return message.SensorMotion }
func (m *Motion) Unit() string { return "detected" }

func (m *Motion) Next(now time.Time) float64 {
	if m.remaining > 0 {
		m.remaining--
		return 1
	}

	probability := 0.1
	if hour := now.Hour(); hour >= 9 && hour <= 22 {
		probability = 0.7
	}
	if m.rng.Float64() < probability {
		m.remaining = 10 + m.rng.Intn(21)
		return 1
	}
	return 0
}
