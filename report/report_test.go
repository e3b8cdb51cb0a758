package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Qalifah/voyagelog/timeline"
	"github.com/Qalifah/voyagelog/voyage"
)

func TestTable(t *testing.T) {
	events := []voyage.Event{
		{ID: "E1", Kind: voyage.SOSP, DayOrdinal: 43831, DayFraction: 0.708333, Vessel: "9395044", Number: "6"},
		{ID: "E2", Kind: voyage.EOSP, DayOrdinal: 43831, DayFraction: 0.791667, Vessel: "9395044", Number: "6"},
	}
	tl, err := timeline.Build("9395044", "6", events, false)
	require.NoError(t, err)

	rows := Table(tl)
	require.Len(t, rows, 2)

	assert.Equal(t, "E1", rows[0].ID)
	assert.Equal(t, "9395044", rows[0].Vessel)
	assert.Equal(t, "6", rows[0].Voyage)
	assert.Equal(t, "SOSP", rows[0].Kind)
	assert.Equal(t, "Unknown", rows[0].Stage)
	assert.Zero(t, rows[0].DurationHours)
	assert.Zero(t, rows[0].DistanceKm)

	assert.Equal(t, "At Port", rows[1].Stage)
	assert.Equal(t, time.Date(2020, 1, 1, 19, 0, 0, 0, time.UTC), rows[1].At)
	assert.InDelta(t, 2.0, rows[1].DurationHours, 1e-9)
}

func TestTableEmptyTimeline(t *testing.T) {
	assert.Empty(t, Table(timeline.Timeline{}))
}
