package timeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Qalifah/voyagelog/geo"
	"github.com/Qalifah/voyagelog/voyage"
)

const (
	testVessel = voyage.VesselID("9395044")
	testNumber = voyage.Number("6")
)

func testEvent(id string, kind voyage.EventKind, day int, fraction float64, pos *geo.Position) voyage.Event {
	return voyage.Event{
		ID:          voyage.ID(id),
		Kind:        kind,
		DayOrdinal:  day,
		DayFraction: fraction,
		Position:    pos,
		Vessel:      testVessel,
		Number:      testNumber,
	}
}

func coastalLeg() []voyage.Event {
	losAngeles := &geo.Position{Latitude: 34.0522, Longitude: -118.2437}
	fresno := &geo.Position{Latitude: 36.7783, Longitude: -119.4179}
	return []voyage.Event{
		testEvent("E1", voyage.SOSP, 43831, 0.708333, losAngeles),
		testEvent("E2", voyage.EOSP, 43831, 0.791667, losAngeles),
		testEvent("E3", voyage.SOSP, 43832, 0.333333, fresno),
		testEvent("E4", voyage.EOSP, 43832, 0.583333, fresno),
	}
}

func TestBuildCoastalLeg(t *testing.T) {
	tl, err := Build(testVessel, testNumber, coastalLeg(), false)
	require.NoError(t, err)
	require.Len(t, tl.Events, 4)
	assert.Empty(t, tl.Skipped)

	first := tl.Events[0]
	assert.Equal(t, voyage.StageUnknown, first.Stage)
	assert.Zero(t, first.DurationHours)
	assert.Zero(t, first.DistanceKm)
	assert.Nil(t, first.Predecessor)

	second := tl.Events[1]
	assert.Equal(t, voyage.AtPort, second.Stage)
	assert.InDelta(t, 2.0, second.DurationHours, 1e-9)
	assert.InDelta(t, 0, second.DistanceKm, 1e-9)

	third := tl.Events[2]
	assert.Equal(t, voyage.AtSea, third.Stage)
	assert.InDelta(t, 13.0, third.DurationHours, 1e-9)
	assert.InDelta(t, 321.25, third.DistanceKm, 0.01)

	fourth := tl.Events[3]
	assert.Equal(t, voyage.AtPort, fourth.Stage)
	assert.InDelta(t, 6.0, fourth.DurationHours, 1e-9)
	assert.InDelta(t, 0, fourth.DistanceKm, 1e-9)

	assert.InDelta(t, 13.0, tl.Totals.AtSeaHours, 1e-9)
	assert.InDelta(t, 8.0, tl.Totals.AtPortHours, 1e-9)
}

func TestBuildOrdersShuffledInput(t *testing.T) {
	events := coastalLeg()
	shuffled := []voyage.Event{events[2], events[0], events[3], events[1]}

	tl, err := Build(testVessel, testNumber, shuffled, false)
	require.NoError(t, err)
	require.Len(t, tl.Events, 4)

	for i := 1; i < len(tl.Events); i++ {
		assert.False(t, tl.Events[i].At.Before(tl.Events[i-1].At),
			"instants must be non-decreasing after sort")
		assert.Same(t, tl.Events[i-1], tl.Events[i].Predecessor)
	}
	assert.Equal(t, voyage.ID("E1"), tl.Events[0].Event.ID)
	assert.Equal(t, voyage.ID("E4"), tl.Events[3].Event.ID)
}

func TestBuildIsIdempotent(t *testing.T) {
	events := coastalLeg()
	a, err := Build(testVessel, testNumber, events, false)
	require.NoError(t, err)
	b, err := Build(testVessel, testNumber, events, false)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildTieBreaksByID(t *testing.T) {
	events := []voyage.Event{
		testEvent("B", voyage.EOSP, 100, 0.5, nil),
		testEvent("A", voyage.SOSP, 100, 0.5, nil),
	}
	tl, err := Build(testVessel, testNumber, events, false)
	require.NoError(t, err)
	require.Len(t, tl.Events, 2)
	assert.Equal(t, voyage.ID("A"), tl.Events[0].Event.ID)
	assert.Equal(t, voyage.ID("B"), tl.Events[1].Event.ID)
}

func TestBuildEmptyPartition(t *testing.T) {
	_, err := Build(testVessel, testNumber, nil, false)
	assert.True(t, errors.Is(err, ErrEmptyPartition))
}

func TestBuildSingleEvent(t *testing.T) {
	tl, err := Build(testVessel, testNumber, []voyage.Event{
		testEvent("only", voyage.SOSP, 100, 0.25, nil),
	}, false)
	require.NoError(t, err)
	require.Len(t, tl.Events, 1)
	assert.Nil(t, tl.Events[0].Predecessor)
	assert.Equal(t, voyage.StageUnknown, tl.Events[0].Stage)
	assert.Zero(t, tl.Events[0].DurationHours)
	assert.Zero(t, tl.Events[0].DistanceKm)
}

func TestBuildSkipsInvalidTimestamp(t *testing.T) {
	events := append(coastalLeg(), testEvent("BAD", voyage.SOSP, 43833, 1.5, nil))

	tl, err := Build(testVessel, testNumber, events, false)
	require.NoError(t, err)
	assert.Len(t, tl.Events, 4)
	require.Len(t, tl.Skipped, 1)
	assert.Equal(t, voyage.ID("BAD"), tl.Skipped[0].ID)
	assert.True(t, errors.Is(tl.Skipped[0].Err, voyage.ErrInvalidTimestamp))
}

func TestBuildStrictFailsOnInvalidTimestamp(t *testing.T) {
	events := append(coastalLeg(), testEvent("BAD", voyage.SOSP, 43833, 1.5, nil))

	_, err := Build(testVessel, testNumber, events, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, voyage.ErrInvalidTimestamp))
	assert.Contains(t, err.Error(), "BAD")
}

func TestBuildExcludesAllocatedEvents(t *testing.T) {
	reassigned := voyage.Number("7")
	moved := testEvent("MOVED", voyage.EOSP, 43830, 0.5, nil)
	moved.AllocatedTo = &reassigned

	tl, err := Build(testVessel, testNumber, append(coastalLeg(), moved), false)
	require.NoError(t, err)
	assert.Len(t, tl.Events, 4)
	for _, e := range tl.Events {
		assert.NotEqual(t, voyage.ID("MOVED"), e.Event.ID)
	}
}

func TestBuildPartitionIsolation(t *testing.T) {
	foreign := testEvent("F1", voyage.EOSP, 43830, 0.9, nil)
	foreign.Number = voyage.Number("7")

	// Interleave a foreign voyage's event before the partition's first event.
	tl, err := Build(testVessel, testNumber, append([]voyage.Event{foreign}, coastalLeg()...), false)
	require.NoError(t, err)
	require.Len(t, tl.Events, 4)

	// The foreign EOSP must not become E1's predecessor and turn it "At Sea".
	assert.Nil(t, tl.Events[0].Predecessor)
	assert.Equal(t, voyage.StageUnknown, tl.Events[0].Stage)
}

func TestStageSeries(t *testing.T) {
	tl, err := Build(testVessel, testNumber, coastalLeg(), false)
	require.NoError(t, err)

	series := tl.StageSeries()
	require.Len(t, series, 3)
	assert.Equal(t, voyage.StageUnknown, series[0].Stage)
	assert.Equal(t, voyage.AtPort, series[1].Stage)
	assert.Equal(t, voyage.AtSea, series[2].Stage)
	assert.Len(t, series[1].Points, 2)
	assert.Len(t, series[2].Points, 1)
	assert.Equal(t, time.Date(2020, 1, 2, 8, 0, 0, 0, time.UTC), series[2].Points[0].At)
	assert.InDelta(t, 13.0, series[2].Points[0].DurationHours, 1e-9)
}
