package dto

import "landing-sequencer-service/internal/domain"

// AircraftPayload mirrors the aircraft records of the landing dataset.
// OriginalIndex defaults to the record's position when omitted.
type AircraftPayload struct {
	FlightID      string  `json:"FlightID"`
	OriginalIndex *int    `json:"original_index,omitempty"`
	ELT           int     `json:"ELT"`
	TLT           int     `json:"TLT"`
	LLT           int     `json:"LLT"`
	EarlyPenalty  float64 `json:"EarlyPenalty"`
	LatePenalty   float64 `json:"LatePenalty"`
}

type SequenceRequest struct {
	Name       string            `json:"name"`
	Aircraft   []AircraftPayload `json:"aircraft"`
	Separation [][]int           `json:"separation"`
}

type AircraftResponse struct {
	FlightID      string  `json:"FlightID"`
	OriginalIndex int     `json:"original_index"`
	ELT           int     `json:"ELT"`
	TLT           int     `json:"TLT"`
	LLT           int     `json:"LLT"`
	EarlyPenalty  float64 `json:"EarlyPenalty"`
	LatePenalty   float64 `json:"LatePenalty"`
}

type ScheduleEntryResponse struct {
	AircraftResponse
	ActualLandingTime int     `json:"ActualLandingTime"`
	DeviationCost     float64 `json:"DeviationCost"`
}

type ScheduleResponse struct {
	Dataset        string                  `json:"dataset,omitempty"`
	Fingerprint    string                  `json:"fingerprint,omitempty"`
	Cached         bool                    `json:"cached"`
	RunID          int64                   `json:"run_id,omitempty"`
	Schedule       []ScheduleEntryResponse `json:"schedule"`
	Diverted       []AircraftResponse      `json:"diverted"`
	TotalCost      float64                 `json:"total_cost"`
	TotalScheduled int                     `json:"total_scheduled"`
	TotalDiverted  int                     `json:"total_diverted"`
}

func NewAircraftResponse(a domain.Aircraft) AircraftResponse {
	return AircraftResponse{
		FlightID:      a.FlightID,
		OriginalIndex: a.OriginalIndex,
		ELT:           a.ELT,
		TLT:           a.TLT,
		LLT:           a.LLT,
		EarlyPenalty:  a.EarlyPenalty,
		LatePenalty:   a.LatePenalty,
	}
}

// NewScheduleResponse maps a sequencing result onto the wire shape shared by
// the HTTP API and alpctl. Run metadata (dataset, fingerprint, cached, run
// id) is left for the caller to fill in.
func NewScheduleResponse(res *domain.SchedulingResult) ScheduleResponse {
	resp := ScheduleResponse{
		Schedule: []ScheduleEntryResponse{},
		Diverted: []AircraftResponse{},
	}
	if res == nil {
		return resp
	}

	resp.TotalCost = res.TotalCost
	resp.TotalScheduled = res.TotalScheduled()
	resp.TotalDiverted = res.TotalDiverted()
	for _, e := range res.Schedule {
		resp.Schedule = append(resp.Schedule, ScheduleEntryResponse{
			AircraftResponse:  NewAircraftResponse(e.Aircraft),
			ActualLandingTime: e.ActualLandingTime,
			DeviationCost:     e.DeviationCost,
		})
	}
	for _, a := range res.Diverted {
		resp.Diverted = append(resp.Diverted, NewAircraftResponse(a))
	}

	return resp
}
