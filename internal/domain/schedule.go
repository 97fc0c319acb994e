package domain

// Outcome is the per-aircraft decision taken by the sequencer.
type Outcome int

const (
	Accepted Outcome = iota
	Diverted
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Diverted:
		return "diverted"
	default:
		return "unknown"
	}
}

// ScheduleEntry is an accepted aircraft with its assigned landing time.
// DeviationCost is already rounded to 2 decimal places.
type ScheduleEntry struct {
	Aircraft
	ActualLandingTime int
	DeviationCost     float64
}

// Decision records what happened to one aircraft, in processing order.
type Decision struct {
	FlightID      string
	OriginalIndex int
	Outcome       Outcome
}

// SchedulingResult is the immutable output of one sequencing run.
//
// Schedule is in landing order, which is also chronological. Diverted is in
// the order aircraft were rejected (LLT ascending). TotalCost is the plain
// float sum of the already rounded DeviationCost values, accumulated in
// Schedule order and never rounded again. Decisions holds exactly one entry
// per input aircraft.
type SchedulingResult struct {
	Schedule  []ScheduleEntry
	Diverted  []Aircraft
	TotalCost float64
	Decisions []Decision
}

func (r *SchedulingResult) TotalScheduled() int { return len(r.Schedule) }

func (r *SchedulingResult) TotalDiverted() int { return len(r.Diverted) }
