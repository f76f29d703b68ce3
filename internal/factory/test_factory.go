package factory

import (
	"context"
	"time"

	"github.com/mcoot/mergington-activities/internal/dependencies/mocks"
	"github.com/mcoot/mergington-activities/internal/model"
	"github.com/mcoot/mergington-activities/internal/storage/memory"
	"github.com/mcoot/mergington-activities/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// It knows the teachers from TestTeachers and holds no activities until seeded.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, TestTeachers(), testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}

// SeedTestActivities seeds the small activity set from TestActivities
func (t *TestApp) SeedTestActivities() error {
	return t.SeedActivities(context.Background(), TestActivities())
}

// TestTeachers returns the plaintext teacher credentials used across tests
func TestTeachers() []model.Credential {
	return []model.Credential{
		{Username: "mr.smith", Password: "pass123"},
		{Username: "ms.johnson", Password: "teach456"},
	}
}

// TestActivities returns a fresh copy of a small activity set
func TestActivities() []*model.Activity {
	return []*model.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Category:        "Academic",
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Category:        "Academic",
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Category:        "Sports",
			Participants:    []string{},
		},
	}
}
