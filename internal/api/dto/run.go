package dto

import "time"

type RunResponse struct {
	RunID          int64     `json:"run_id"`
	Dataset        string    `json:"dataset"`
	Fingerprint    string    `json:"fingerprint"`
	TotalCost      float64   `json:"total_cost"`
	TotalScheduled int       `json:"total_scheduled"`
	TotalDiverted  int       `json:"total_diverted"`
	CreatedAt      time.Time `json:"created_at"`
}

type ListRunsResponse struct {
	Runs []RunResponse `json:"runs"`
}
