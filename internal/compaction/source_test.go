package compaction_test

// scriptedSource replays fixed draws so tests can force specific samples.
type scriptedSource struct {
	ints   []int
	floats []float64
	intN   []int
}

func (s *scriptedSource) IntN(n int) int {
	s.intN = append(s.intN, n)
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}
