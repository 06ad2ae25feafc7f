package base

// Stamp is embedded by fixture records.
type Stamp struct {
	Revision int32 `column:"revision"`
	touched  int64 `column:"touched_at"`
}

func (s *Stamp) SetTouched(v int64) {
	s.touched = v
}

func (s *Stamp) Touched() int64 {
	return s.touched
}
