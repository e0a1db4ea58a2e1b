package spherelife

import (
	"crypto/md5"
	"time"

	"sphere-ca/internal/life"
)

// historyLen is the number of state hashes kept, enough to recognise
// still lifes and oscillators of period two and three.
const historyLen = 4

// Stats tracks derived population figures across generations.
type Stats struct {
	window    int
	fractions []float64
	next      int
	filled    int

	history [][md5.Size]byte

	observed int
	started  time.Time
	last     time.Time
	now      func() time.Time
}

// NewStats returns Stats averaging over the given number of generations.
func NewStats(window int) *Stats {
	if window <= 0 {
		window = 1
	}
	return &Stats{
		window:    window,
		fractions: make([]float64, window),
		now:       time.Now,
	}
}

// Reset forgets every observation.
func (s *Stats) Reset() {
	clear(s.fractions)
	s.next, s.filled = 0, 0
	s.history = s.history[:0]
	s.observed = 0
	s.started, s.last = time.Time{}, time.Time{}
}

// Observe records one generation.
func (s *Stats) Observe(state life.State) {
	now := s.now()
	if s.observed == 0 {
		s.started = now
	}
	s.observed++
	s.last = now

	s.fractions[s.next] = life.AliveFraction(state)
	s.next = (s.next + 1) % s.window
	if s.filled < s.window {
		s.filled++
	}

	sum := md5.Sum(state)
	if len(s.history) == historyLen {
		copy(s.history, s.history[1:])
		s.history = s.history[:historyLen-1]
	}
	s.history = append(s.history, sum)
}

// MovingAverage returns the mean alive fraction over the window.
func (s *Stats) MovingAverage() float64 {
	if s.filled == 0 {
		return 0
	}
	total := 0.0
	for i := 0; i < s.filled; i++ {
		total += s.fractions[i]
	}
	return total / float64(s.filled)
}

// Rate returns observed generations per second since the first
// observation.
func (s *Stats) Rate() float64 {
	if s.observed < 2 {
		return 0
	}
	elapsed := s.last.Sub(s.started).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.observed-1) / elapsed
}

// Stagnant reports whether the latest state repeats one of the three
// before it.
func (s *Stats) Stagnant() bool {
	n := len(s.history)
	if n < 2 {
		return false
	}
	cur := s.history[n-1]
	for _, h := range s.history[:n-1] {
		if h == cur {
			return true
		}
	}
	return false
}
