package calendar

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeguard/internal/domain"
)

func TestMockSource_Events(t *testing.T) {
	opts := DefaultMockOptions()
	opts.Seed = 42
	src := NewMockSource(opts)
	start := domain.NewDate(2024, time.January, 1)

	cd, err := src.Events(context.Background(), start, 7)
	require.NoError(t, err)
	require.Equal(t, 7, cd.Len())

	for i, day := range cd.Days() {
		assert.Equal(t, start.AddDays(i), day.Date)
		require.GreaterOrEqual(t, len(day.Events), 1)
		require.LessOrEqual(t, len(day.Events), 2)

		for j, ev := range day.Events {
			assert.Equal(t, domain.NewClock(9+2*j, 0), ev.Start)
			assert.Equal(t, domain.NewClock(10+2*j, 0), ev.End)
			assert.Equal(t, day.Date, ev.Date)
			assert.Equal(t, fmt.Sprintf("Project Work %d", j+1), ev.Title)
			_, err := uuid.Parse(ev.ID)
			assert.NoError(t, err)
		}
	}
}

func TestMockSource_SeedIsDeterministic(t *testing.T) {
	opts := DefaultMockOptions()
	opts.Seed = 7
	start := domain.NewDate(2024, time.March, 1)

	first, err := NewMockSource(opts).Events(context.Background(), start, 14)
	require.NoError(t, err)
	second, err := NewMockSource(opts).Events(context.Background(), start, 14)
	require.NoError(t, err)

	assert.Equal(t, first.Days(), second.Days())
}

func TestMockSource_FixedCount(t *testing.T) {
	opts := DefaultMockOptions()
	opts.MinEvents = 3
	opts.MaxEvents = 3
	opts.Seed = 1

	cd, err := NewMockSource(opts).Events(context.Background(), domain.NewDate(2024, time.January, 1), 2)
	require.NoError(t, err)
	assert.Equal(t, 6, cd.EventCount())

	events, _ := cd.Events(domain.NewDate(2024, time.January, 2))
	require.Len(t, events, 3)
	assert.Equal(t, domain.NewClock(13, 0), events[2].Start)
	assert.NotEqual(t, events[0].ID, events[1].ID)
}

func TestMockSource_ZeroEvents(t *testing.T) {
	opts := DefaultMockOptions()
	opts.MinEvents = 0
	opts.MaxEvents = 0

	cd, err := NewMockSource(opts).Events(context.Background(), domain.NewDate(2024, time.January, 1), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, cd.Len())
	assert.Equal(t, 0, cd.EventCount())
}

func TestMockSource_InvalidDays(t *testing.T) {
	_, err := NewMockSource(DefaultMockOptions()).Events(context.Background(), domain.NewDate(2024, time.January, 1), 0)
	assert.Error(t, err)
}
