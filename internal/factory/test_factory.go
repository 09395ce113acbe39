package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/fantasy-keepers/internal/dependencies/mocks"
	"github.com/mcoot/fantasy-keepers/internal/drafttracker"
	"github.com/mcoot/fantasy-keepers/internal/services/replay"
	"github.com/mcoot/fantasy-keepers/internal/services/roster"
	"github.com/mcoot/fantasy-keepers/internal/storage/memory"
)

// TestSeason is the season NewTestApp serves
const TestSeason = 2025

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	Memory     *memory.Storage
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App over in-memory storage, mocked clock and random,
// and the given roster CSV as the TestSeason roster
func NewTestApp(rosterCSV string) *TestApp {
	return NewTestAppWithTracker(rosterCSV, drafttracker.NewClient(drafttracker.DefaultConfig()))
}

// NewTestAppWithTracker is NewTestApp with a custom draft tracker
func NewTestAppWithTracker(rosterCSV string, tracker replay.Tracker) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(
		store,
		mockClock,
		mockRandom,
		roster.StaticSource{TestSeason: rosterCSV},
		TestSeason,
		tracker,
		logger,
	)

	return &TestApp{
		App:        app,
		Memory:     store,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
