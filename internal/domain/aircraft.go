package domain

// Aircraft is one arrival competing for the runway.
//
// OriginalIndex is the zero-based position of the aircraft in its dataset and
// is the key into the SeparationMatrix; FlightID is only a display label.
// ELT <= TLT <= LLT is expected of valid input but is not enforced: an
// aircraft whose LLT precedes its ELT can never be accepted and is always
// diverted.
type Aircraft struct {
	FlightID      string
	OriginalIndex int
	ELT           int
	TLT           int
	LLT           int
	EarlyPenalty  float64
	LatePenalty   float64
}

// Dataset bundles the inputs of one sequencing run as supplied by a
// DatasetProvider.
type Dataset struct {
	Name       string
	Aircraft   []Aircraft
	Separation SeparationMatrix
}
