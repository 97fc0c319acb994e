package dataset

import (
	"landing-sequencer-service/internal/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orlibSample = ` 3 10
 54 129 155 559 10.00 10.00
 99999 3 15
 120 195 258 744 10.00 10.00
 3 99999
 3
 14 89 98 510 30.00 30.00
 15 15 99999
`

const referenceSample = `3
0 54 129 155 559 10.00 10.00
1 120 195 258 744 10.00 10.00
2 14 89 98 510 30.00 30.00
99999 3 15
3 99999 3
15 15 99999
`

var wantSample = domain.Dataset{
	Name: "sample",
	Aircraft: []domain.Aircraft{
		{FlightID: "FL0", OriginalIndex: 0, ELT: 129, TLT: 155, LLT: 559, EarlyPenalty: 10, LatePenalty: 10},
		{FlightID: "FL1", OriginalIndex: 1, ELT: 195, TLT: 258, LLT: 744, EarlyPenalty: 10, LatePenalty: 10},
		{FlightID: "FL2", OriginalIndex: 2, ELT: 89, TLT: 98, LLT: 510, EarlyPenalty: 30, LatePenalty: 30},
	},
	Separation: domain.SeparationMatrix{
		{99999, 3, 15},
		{3, 99999, 3},
		{15, 15, 99999},
	},
}

func TestParseORLib(t *testing.T) {
	ds, err := Parse(strings.NewReader(orlibSample), LayoutORLib, "sample")
	require.NoError(t, err)
	assert.Equal(t, wantSample, ds)
}

func TestParseReference(t *testing.T) {
	ds, err := Parse(strings.NewReader(referenceSample), LayoutReference, "sample")
	require.NoError(t, err)
	assert.Equal(t, wantSample, ds)
}

func TestParseEmptyDataset(t *testing.T) {
	ds, err := Parse(strings.NewReader("0 0\n"), LayoutORLib, "empty")
	require.NoError(t, err)
	assert.Empty(t, ds.Aircraft)
	assert.Empty(t, ds.Separation)

	ds, err = Parse(strings.NewReader("0\n"), LayoutReference, "empty")
	require.NoError(t, err)
	assert.Empty(t, ds.Aircraft)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		input  string
	}{
		{"orlib empty", LayoutORLib, ""},
		{"orlib bad count", LayoutORLib, "ten 10"},
		{"orlib truncated matrix", LayoutORLib, "2 10\n0 1 2 3 1 1\n0 5\n0 1 2 3 1 1\n5\n"},
		{"orlib bad penalty", LayoutORLib, "1 10\n0 1 2 3 x 1\n0\n"},
		{"reference short aircraft line", LayoutReference, "1\n0 1 2 3 4\n0\n"},
		{"reference missing rows", LayoutReference, "2\n0 0 1 2 3 1 1\n0 0 1 2 3 1 1\n0 5\n"},
		{"reference ragged row", LayoutReference, "2\n0 0 1 2 3 1 1\n0 0 1 2 3 1 1\n0 5 7\n5 0\n"},
		{"reference negative count", LayoutReference, "-1\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.input), tc.layout, tc.name)
			require.ErrorIs(t, err, domain.ErrMalformedDataset)
		})
	}
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout(" ORLIB ")
	require.NoError(t, err)
	assert.Equal(t, LayoutORLib, l)

	l, err = ParseLayout("reference")
	require.NoError(t, err)
	assert.Equal(t, LayoutReference, l)

	_, err = ParseLayout("csv")
	require.Error(t, err)
}
