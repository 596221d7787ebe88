package validate

// Summary groups validation errors by kind with per-kind counts, the shape
// the error-report UI renders.
type Summary struct {
	Total  int                           `json:"total"`
	Counts map[ErrorKind]int             `json:"counts"`
	ByKind map[ErrorKind][]ValidationError `json:"byKind"`
}

// Summarize builds a Summary from an error list, preserving the original
// order within each kind.
func Summarize(errs []ValidationError) Summary {
	s := Summary{
		Total:  len(errs),
		Counts: make(map[ErrorKind]int),
		ByKind: make(map[ErrorKind][]ValidationError),
	}
	for _, e := range errs {
		s.Counts[e.Kind]++
		s.ByKind[e.Kind] = append(s.ByKind[e.Kind], e)
	}
	return s
}
