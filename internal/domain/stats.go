package domain

import "time"

// RunStatistics keeps count, min, max and mean of elapsed-time samples
// without storing them. The mean is updated incrementally.
type RunStatistics struct {
	count int
	min   float64
	max   float64
	mean  float64
}

// Add records one sample
func (s *RunStatistics) Add(d time.Duration) {
	secs := d.Seconds()
	s.count++
	if s.count == 1 {
		s.min, s.max, s.mean = secs, secs, secs
		return
	}
	if secs < s.min {
		s.min = secs
	}
	if secs > s.max {
		s.max = secs
	}
	s.mean += (secs - s.mean) / float64(s.count)
}

// Count returns the number of samples seen
func (s RunStatistics) Count() int {
	return s.count
}

// Min returns the smallest sample in seconds; ok is false with no samples
func (s RunStatistics) Min() (float64, bool) {
	return s.min, s.count > 0
}

// Max returns the largest sample in seconds
func (s RunStatistics) Max() (float64, bool) {
	return s.max, s.count > 0
}

// Mean returns the average sample in seconds
func (s RunStatistics) Mean() (float64, bool) {
	return s.mean, s.count > 0
}
