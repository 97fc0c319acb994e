package main

import (
	"bytes"
	"encoding/json"
	"landing-sequencer-service/internal/domain"
	"landing-sequencer-service/internal/services"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteScheduleJSONUsesAPIKeys(t *testing.T) {
	planes := []domain.Aircraft{
		{FlightID: "FL0", OriginalIndex: 0, ELT: 0, TLT: 5, LLT: 10, EarlyPenalty: 1, LatePenalty: 2},
		{FlightID: "FL1", OriginalIndex: 1, ELT: 0, TLT: 1, LLT: 2, EarlyPenalty: 1, LatePenalty: 2},
	}
	sep := domain.SeparationMatrix{{0, 20}, {20, 0}}

	res, err := services.Sequence(planes, sep)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeScheduleJSON(&buf, &services.RunOutput{
		Dataset:     "tiny",
		Fingerprint: "abc",
		Result:      res,
	}))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "tiny", doc["dataset"])
	assert.Equal(t, 1.0, doc["total_scheduled"])
	assert.Equal(t, 1.0, doc["total_diverted"])

	schedule := doc["schedule"].([]any)
	require.Len(t, schedule, 1)
	entry := schedule[0].(map[string]any)
	assert.Equal(t, "FL1", entry["FlightID"])
	assert.Equal(t, 1.0, entry["original_index"])
	assert.Contains(t, entry, "ActualLandingTime")
	assert.Contains(t, entry, "DeviationCost")
	assert.NotContains(t, entry, "OriginalIndex")

	diverted := doc["diverted"].([]any)
	require.Len(t, diverted, 1)
	assert.Equal(t, 0.0, diverted[0].(map[string]any)["original_index"])
}
