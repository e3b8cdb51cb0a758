package voyage

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTime(t *testing.T) {
	tests := []struct {
		name        string
		dayOrdinal  int
		dayFraction float64
		want        time.Time
	}{
		{"epoch", 0, 0, time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)},
		{"noon next day", 1, 0.5, time.Date(1899, 12, 31, 12, 0, 0, 0, time.UTC)},
		{"new year 2020 evening", 43831, 0.708333, time.Date(2020, 1, 1, 17, 0, 0, 0, time.UTC)},
		{"fraction rounds to whole seconds", 43831, 0.791667, time.Date(2020, 1, 1, 19, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EventTime(tt.dayOrdinal, tt.dayFraction)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestEventTimeInvalid(t *testing.T) {
	tests := []struct {
		name        string
		dayOrdinal  int
		dayFraction float64
	}{
		{"negative ordinal", -1, 0.5},
		{"fraction at one", 10, 1.0},
		{"fraction above one", 10, 1.5},
		{"negative fraction", 10, -0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EventTime(tt.dayOrdinal, tt.dayFraction)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTimestamp))
		})
	}
}
