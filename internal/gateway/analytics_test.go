package gateway

import (
	"testing"
	"time"

	"github.com/Clover-Hill/iot-project/internal/message"
)

func TestComfortScore(t *testing.T) {
	tests := []struct {
		name       string
		violations map[string]int
		want       int
	}{
		{"no violations", map[string]int{}, 100},
		{"single violation", map[string]int{"noise": 1}, 98},
		{"sums across types", map[string]int{"noise": 3, "temperature": 2}, 90},
		{"floors at zero", map[string]int{"noise": 60}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := comfortScore(tt.violations); got != tt.want {
				t.Errorf("comfortScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComfortScoreMonotonic(t *testing.T) {
	prev := 100
	violations := map[string]int{}
	for i := 1; i <= 60; i++ {
		violations["noise"] = i
		score := comfortScore(violations)
		if score > prev {
			t.Fatalf("score rose from %d to %d at %d violations", prev, score, i)
		}
		prev = score
	}
}

func trendHistory(values ...float64) map[string]*historyBuffer {
	buf := newHistoryBuffer(historyCap)
	for _, v := range values {
		buf.Append(HistoryPoint{Value: v})
	}
	return map[string]*historyBuffer{"temperature": buf}
}

func TestSensorTrends(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{
			name:   "increasing",
			values: []float64{20, 20, 20, 20, 20, 23, 23, 23, 23, 23},
			want:   TrendIncreasing,
		},
		{
			name:   "decreasing",
			values: []float64{23, 23, 23, 23, 23, 20, 20, 20, 20, 20},
			want:   TrendDecreasing,
		},
		{
			name:   "stable within band",
			values: []float64{22, 22, 22, 22, 22, 23, 23, 23, 23, 23},
			want:   TrendStable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trends := sensorTrends(trendHistory(tt.values...))
			got, ok := trends["temperature"]
			if !ok {
				t.Fatal("no trend computed")
			}
			if got.Trend != tt.want {
				t.Errorf("trend = %q, want %q", got.Trend, tt.want)
			}
			if got.Current != tt.values[len(tt.values)-1] {
				t.Errorf("current = %v, want %v", got.Current, tt.values[len(tt.values)-1])
			}
		})
	}
}

func TestSensorTrendsNeedTenSamples(t *testing.T) {
	trends := sensorTrends(trendHistory(22, 22, 22, 22, 22))
	if len(trends) != 0 {
		t.Errorf("trends computed from %d samples: %v", 5, trends)
	}
}

func TestSensorTrendsUseRecentWindow(t *testing.T) {
	// Old low values beyond the window must not influence the result.
	values := make([]float64, 0, 30)
	for i := 0; i < 20; i++ {
		values = append(values, 5)
	}
	values = append(values, 22, 22, 22, 22, 22, 22, 22, 22, 22, 22)

	trends := sensorTrends(trendHistory(values...))
	if got := trends["temperature"].Trend; got != TrendStable {
		t.Errorf("trend = %q, want stable over the recent window", got)
	}
	if got := trends["temperature"].Average; got != 22 {
		t.Errorf("average = %v, want 22", got)
	}
}

func sensorsWith(values map[string]float64) map[string]message.SensorReading {
	sensors := make(map[string]message.SensorReading, len(values))
	for typ, v := range values {
		sensors[typ] = message.SensorReading{Type: typ, Value: v}
	}
	return sensors
}

func TestRecommendations(t *testing.T) {
	noon := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		sensors map[string]float64
		now     time.Time
		want    []string
	}{
		{
			name:    "comfortable room",
			sensors: map[string]float64{"temperature": 22, "light": 500, "noise": 40},
			now:     noon,
			want:    nil,
		},
		{
			name:    "cold room",
			sensors: map[string]float64{"temperature": 18},
			now:     noon,
			want:    []string{"Room is too cold. Consider increasing temperature."},
		},
		{
			name:    "warm room",
			sensors: map[string]float64{"temperature": 26},
			now:     noon,
			want:    []string{"Room is too warm. Consider cooling down."},
		},
		{
			name:    "dark during study hours",
			sensors: map[string]float64{"light": 200},
			now:     noon,
			want:    []string{"Low light during study hours. Consider opening curtains or turning on lights."},
		},
		{
			name:    "bright in the evening",
			sensors: map[string]float64{"light": 800},
			now:     evening,
			want:    []string{"Bright light in evening. Consider dimming for better sleep preparation."},
		},
		{
			name:    "dark in the evening is fine",
			sensors: map[string]float64{"light": 200},
			now:     evening,
			want:    nil,
		},
		{
			name:    "noisy room",
			sensors: map[string]float64{"noise": 55},
			now:     noon,
			want:    []string{"High noise levels. Consider using noise-cancelling headphones or finding a quieter space."},
		},
		{
			name:    "no readings",
			sensors: nil,
			now:     noon,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recommendations(sensorsWith(tt.sensors), tt.now)
			if len(got) != len(tt.want) {
				t.Fatalf("recommendations = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("recommendation[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAggregatorAnalytics(t *testing.T) {
	agg := testAggregator(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	agg.ingest(sensorMsg(t, "temperature", 26), now) // violation + warm rec
	agg.ingest(sensorMsg(t, "noise", 60), now)       // violation + noisy rec

	analytics := agg.Analytics(now)
	if analytics.ComfortScore != 96 {
		t.Errorf("comfort score = %d, want 96", analytics.ComfortScore)
	}
	if len(analytics.Recommendations) != 2 {
		t.Errorf("recommendations = %q, want 2", analytics.Recommendations)
	}
	if len(analytics.SensorTrends) != 0 {
		t.Errorf("trends from 1 sample each: %v", analytics.SensorTrends)
	}
}
