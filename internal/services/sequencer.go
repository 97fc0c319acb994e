package services

import (
	"cmp"
	"fmt"
	"landing-sequencer-service/internal/domain"
	"slices"
	"strconv"
)

// Sequence builds a single-runway landing schedule with a greedy heuristic.
//
// Aircraft are processed once each, tightest deadline (LLT) first. Every
// aircraft lands at the later of its ELT and the time the previous accepted
// landing plus separation allows; if that exceeds its LLT it is diverted.
// Diverted aircraft never influence later separations, and no decision is
// revisited. The result is deterministic but not optimal.
//
// The inputs are not modified. A separation matrix that cannot be indexed by
// every OriginalIndex fails with domain.ErrInvalidInputShape before any
// aircraft is processed.
func Sequence(aircraft []domain.Aircraft, separation domain.SeparationMatrix) (*domain.SchedulingResult, error) {
	if err := separation.Validate(aircraft); err != nil {
		return nil, fmt.Errorf("sequence: %w", err)
	}

	// Stable sort so aircraft with equal LLT keep their input order.
	ordered := slices.Clone(aircraft)
	slices.SortStableFunc(ordered, func(a, b domain.Aircraft) int {
		return cmp.Compare(a.LLT, b.LLT)
	})

	result := &domain.SchedulingResult{
		Schedule:  []domain.ScheduleEntry{},
		Diverted:  []domain.Aircraft{},
		Decisions: make([]domain.Decision, 0, len(ordered)),
	}

	r := runway{lastIndex: -1}
	for _, p := range ordered {
		landing, outcome := r.assign(p, separation)

		result.Decisions = append(result.Decisions, domain.Decision{
			FlightID:      p.FlightID,
			OriginalIndex: p.OriginalIndex,
			Outcome:       outcome,
		})

		if outcome == domain.Diverted {
			result.Diverted = append(result.Diverted, p)
			continue
		}

		cost := DeviationCost(p, landing)
		result.TotalCost += cost
		result.Schedule = append(result.Schedule, domain.ScheduleEntry{
			Aircraft:          p,
			ActualLandingTime: landing,
			DeviationCost:     cost,
		})
	}

	return result, nil
}

// runway tracks the last accepted landing. lastIndex is -1 until an aircraft
// has landed.
type runway struct {
	lastTime  int
	lastIndex int
}

// assign decides whether p can land and, if so, when. Only accepted
// landings advance the runway state.
func (r *runway) assign(p domain.Aircraft, separation domain.SeparationMatrix) (int, domain.Outcome) {
	needed := 0
	if r.lastIndex >= 0 {
		needed = separation.Between(r.lastIndex, p.OriginalIndex)
	}

	landing := max(p.ELT, r.lastTime+needed)
	if landing > p.LLT {
		return 0, domain.Diverted
	}

	r.lastTime = landing
	r.lastIndex = p.OriginalIndex
	return landing, domain.Accepted
}

// DeviationCost prices landing at t against the aircraft's target time,
// linear in the offset and rounded to 2 decimal places. Exact ties round
// half to even on the binary value, so 0.125 becomes 0.12.
func DeviationCost(p domain.Aircraft, t int) float64 {
	var cost float64
	switch {
	case t < p.TLT:
		cost = float64(p.TLT-t) * p.EarlyPenalty
	case t > p.TLT:
		cost = float64(t-p.TLT) * p.LatePenalty
	}
	return roundCents(cost)
}

// roundCents rounds the exact value of v to 2 decimals.
func roundCents(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
