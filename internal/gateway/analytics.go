package gateway

import (
	"math"
	"time"

	"github.com/Clover-Hill/iot-project/internal/message"
)

// Trend analysis parameters: trends need at least trendMinSamples retained
// samples; the last trendWindow samples are compared as two halves with a
// relative band of trendBand around the older half's mean.
const (
	trendMinSamples = 10
	trendWindow     = 10
	trendBand       = 0.1
)

// Trend direction labels.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// SensorTrend summarizes the recent direction of one sensor's readings.
type SensorTrend struct {
	Current float64 `json:"current"`
	Average float64 `json:"average"`
	Trend   string  `json:"trend"`
}

// Analytics is the derived view computed on demand, never stored.
type Analytics struct {
	ComfortScore    int                    `json:"comfort_score"`
	SensorTrends    map[string]SensorTrend `json:"sensor_trends"`
	Recommendations []string               `json:"recommendations"`
}

// Analytics computes the comfort score, per-sensor trends, and
// recommendations from the current aggregate state. The time-of-day
// recommendations use now's hour.
func (a *Aggregator) Analytics(now time.Time) Analytics {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return Analytics{
		ComfortScore:    comfortScore(a.violations),
		SensorTrends:    sensorTrends(a.history),
		Recommendations: recommendations(a.sensors, now),
	}
}

// comfortScore maps the total violation count to a 0..100 score, losing
// two points per violation.
func comfortScore(violations map[string]int) int {
	total := 0
	for _, n := range violations {
		total += n
	}
	score := 100 - total*2
	if score < 0 {
		return 0
	}
	return score
}

// sensorTrends classifies each sensor with enough history as increasing,
// decreasing, or stable by comparing the means of the two halves of the
// most recent window.
func sensorTrends(history map[string]*historyBuffer) map[string]SensorTrend {
	trends := make(map[string]SensorTrend)
	for sensorType, buf := range history {
		if buf.Len() < trendMinSamples {
			continue
		}
		window := buf.Last(trendWindow)
		half := len(window) / 2

		var total, older, recent float64
		for i, p := range window {
			total += p.Value
			if i < half {
				older += p.Value
			} else {
				recent += p.Value
			}
		}
		olderAvg := older / float64(half)
		recentAvg := recent / float64(len(window)-half)

		trend := TrendStable
		switch {
		case recentAvg > olderAvg*(1+trendBand):
			trend = TrendIncreasing
		case recentAvg < olderAvg*(1-trendBand):
			trend = TrendDecreasing
		}

		trends[sensorType] = SensorTrend{
			Current: window[len(window)-1].Value,
			Average: math.Round(total/float64(len(window))*100) / 100,
			Trend:   trend,
		}
	}
	return trends
}

// recommendations produces advice from the latest readings. Sensors with
// no reading yet contribute nothing.
func recommendations(sensors map[string]message.SensorReading, now time.Time) []string {
	var recs []string

	if temp, ok := sensors[message.SensorTemperature]; ok {
		switch {
		case temp.Value < 20:
			recs = append(recs, "Room is too cold. Consider increasing temperature.")
		case temp.Value > 24:
			recs = append(recs, "Room is too warm. Consider cooling down.")
		}
	}

	if light, ok := sensors[message.SensorLight]; ok {
		hour := now.Hour()
		switch {
		case hour >= 9 && hour <= 17 && light.Value < 300:
			recs = append(recs, "Low light during study hours. Consider opening curtains or turning on lights.")
		case hour >= 20 && light.Value > 700:
			recs = append(recs, "Bright light in evening. Consider dimming for better sleep preparation.")
		}
	}

	if noise, ok := sensors[message.SensorNoise]; ok && noise.Value > 50 {
		recs = append(recs, "High noise levels. Consider using noise-cancelling headphones or finding a quieter space.")
	}

	return recs
}
