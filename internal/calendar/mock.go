package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"timeguard/internal/domain"
	"timeguard/internal/logging"
)

// MockOptions tunes the generated calendar.
type MockOptions struct {
	// Seed makes the output deterministic; zero draws a fresh seed per call.
	Seed           uint64
	MinEvents      int
	MaxEvents      int
	FirstEventHour int
	Spacing        time.Duration
	Duration       time.Duration
	Logger         *slog.Logger
}

// DefaultMockOptions returns one to two one-hour events per day, the first
// at 09:00 and the next two hours later.
func DefaultMockOptions() MockOptions {
	return MockOptions{
		MinEvents:      1,
		MaxEvents:      2,
		FirstEventHour: 9,
		Spacing:        2 * time.Hour,
		Duration:       time.Hour,
	}
}

// MockSource generates synthetic events in place of a calendar service.
type MockSource struct {
	opts   MockOptions
	logger *slog.Logger
}

// NewMockSource creates a mock source.
func NewMockSource(opts MockOptions) *MockSource {
	return &MockSource{opts: opts, logger: logging.OrDiscard(opts.Logger)}
}

// Name returns "mock".
func (m *MockSource) Name() string {
	return "mock"
}

// Events generates events for every date in the range. With a non-zero
// seed, repeated calls return identical events and ids.
func (m *MockSource) Events(ctx context.Context, start domain.Date, days int) (*domain.CalendarDays, error) {
	if err := checkDays(days); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seed := m.opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	var key [32]byte
	for i := 0; i < 8; i++ {
		key[i] = byte(seed >> (8 * i))
	}
	src := rand.NewChaCha8(key)
	rng := rand.New(src)

	cd := domain.NewCalendarDays(start, days)
	for i := 0; i < days; i++ {
		date := start.AddDays(i)
		n := m.opts.MinEvents
		if spread := m.opts.MaxEvents - m.opts.MinEvents; spread > 0 {
			n += rng.IntN(spread + 1)
		}
		for j := 0; j < n; j++ {
			begin := time.Duration(m.opts.FirstEventHour)*time.Hour + time.Duration(j)*m.opts.Spacing
			id, err := uuid.NewRandomFromReader(src)
			if err != nil {
				return nil, fmt.Errorf("generate event id: %w", err)
			}
			cd.Add(domain.CalendarEvent{
				ID:    id.String(),
				Title: fmt.Sprintf("Project Work %d", j+1),
				TimeInterval: domain.TimeInterval{
					Date:  date,
					Start: clockAfter(int64(begin / time.Second)),
					End:   clockAfter(int64((begin + m.opts.Duration) / time.Second)),
				},
			})
		}
	}

	m.logger.Debug("generated mock calendar", "start", start.String(), "days", days, "events", cd.EventCount(), "seed", seed)
	return cd, nil
}
