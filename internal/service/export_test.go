package service

import "time"

// SetNow swaps the clock so tests can cross day boundaries.
func (s *RewardsService) SetNow(now func() time.Time) {
	s.now = now
}
