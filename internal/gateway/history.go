package gateway

import "time"

// historyCap bounds the per-sensor history ring.
const historyCap = 100

// notificationCap bounds the rolling notification log.
const notificationCap = 50

// HistoryPoint is one retained sensor sample.
type HistoryPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// historyBuffer is a fixed-capacity ring of sensor samples. Appending past
// capacity evicts the oldest sample.
type historyBuffer struct {
	points []HistoryPoint
	start  int
	count  int
}

func newHistoryBuffer(capacity int) *historyBuffer {
	return &historyBuffer{points: make([]HistoryPoint, capacity)}
}

// Append adds a sample, evicting the oldest when the ring is full.
func (b *historyBuffer) Append(p HistoryPoint) {
	idx := (b.start + b.count) % len(b.points)
	b.points[idx] = p
	if b.count < len(b.points) {
		b.count++
	} else {
		b.start = (b.start + 1) % len(b.points)
	}
}

// Len returns the number of retained samples.
func (b *historyBuffer) Len() int { return b.count }

// Slice returns the retained samples oldest-first as a fresh slice.
func (b *historyBuffer) Slice() []HistoryPoint {
	out := make([]HistoryPoint, b.count)
	for i := 0; i < b.count; i++ {
		out[i] = b.points[(b.start+i)%len(b.points)]
	}
	return out
}

// Last returns the most recent n samples oldest-first. When fewer than n
// are retained, all of them are returned.
func (b *historyBuffer) Last(n int) []HistoryPoint {
	if n > b.count {
		n = b.count
	}
	out := make([]HistoryPoint, n)
	for i := 0; i < n; i++ {
		out[i] = b.points[(b.start+b.count-n+i)%len(b.points)]
	}
	return out
}
