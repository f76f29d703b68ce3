package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type SeedSuite struct {
	suite.Suite
}

func TestSeedSuite(t *testing.T) {
	suite.Run(t, new(SeedSuite))
}

// Activities

func (s *SeedSuite) TestLoadActivities() {
	doc := `{
		"Chess Club": {
			"description": "Learn strategies",
			"schedule": "Fridays, 3:30 PM - 5:00 PM",
			"max_participants": 12,
			"participants": ["michael@mergington.edu", "daniel@mergington.edu"]
		},
		"Art Club": {
			"description": "Painting",
			"schedule": "Thursdays",
			"max_participants": 15,
			"category": "Arts",
			"participants": []
		}
	}`

	activities, err := LoadActivities(strings.NewReader(doc))
	s.Require().NoError(err)
	s.Require().Len(activities, 2)

	// Sorted by name
	s.Equal("Art Club", activities[0].Name)
	s.Equal("Arts", activities[0].Category)
	s.Empty(activities[0].Participants)
	s.NotNil(activities[0].Participants)

	s.Equal("Chess Club", activities[1].Name)
	s.Equal(12, activities[1].MaxParticipants)
	s.Equal([]string{"michael@mergington.edu", "daniel@mergington.edu"}, activities[1].Participants)
}

func (s *SeedSuite) TestLoadActivitiesMissingParticipantsIsEmpty() {
	doc := `{"Chess Club": {"description": "d", "schedule": "s", "max_participants": 1}}`

	activities, err := LoadActivities(strings.NewReader(doc))
	s.Require().NoError(err)
	s.Empty(activities[0].Participants)
}

func (s *SeedSuite) TestLoadActivitiesRejectsMissingFields() {
	cases := map[string]string{
		"description":      `{"A": {"schedule": "s", "max_participants": 1, "participants": []}}`,
		"schedule":         `{"A": {"description": "d", "max_participants": 1, "participants": []}}`,
		"max_participants": `{"A": {"description": "d", "schedule": "s", "participants": []}}`,
	}
	for field, doc := range cases {
		_, err := LoadActivities(strings.NewReader(doc))
		s.ErrorIs(err, ErrInvalidSeed, field)
		s.ErrorContains(err, field)
	}
}

func (s *SeedSuite) TestLoadActivitiesRejectsNegativeCapacity() {
	doc := `{"A": {"description": "d", "schedule": "s", "max_participants": -1}}`

	_, err := LoadActivities(strings.NewReader(doc))
	s.ErrorIs(err, ErrInvalidSeed)
}

func (s *SeedSuite) TestLoadActivitiesRejectsDuplicateParticipant() {
	doc := `{"A": {"description": "d", "schedule": "s", "max_participants": 5, "participants": ["a@x.com", "a@x.com"]}}`

	_, err := LoadActivities(strings.NewReader(doc))
	s.ErrorIs(err, ErrInvalidSeed)
	s.ErrorContains(err, "duplicate participant")
}

func (s *SeedSuite) TestLoadActivitiesRejectsEmptyName() {
	doc := `{" ": {"description": "d", "schedule": "s", "max_participants": 5}}`

	_, err := LoadActivities(strings.NewReader(doc))
	s.ErrorIs(err, ErrInvalidSeed)
}

func (s *SeedSuite) TestLoadActivitiesRejectsUnknownFields() {
	doc := `{"A": {"description": "d", "schedule": "s", "max_participants": 5, "capacity": 3}}`

	_, err := LoadActivities(strings.NewReader(doc))
	s.ErrorIs(err, ErrInvalidSeed)
}

func (s *SeedSuite) TestLoadActivitiesRejectsWrongTypes() {
	doc := `{"A": {"description": "d", "schedule": "s", "max_participants": "five"}}`

	_, err := LoadActivities(strings.NewReader(doc))
	s.ErrorIs(err, ErrInvalidSeed)
}

func (s *SeedSuite) TestLoadActivitiesRejectsNonObject() {
	_, err := LoadActivities(strings.NewReader(`null`))
	s.ErrorIs(err, ErrInvalidSeed)

	_, err = LoadActivities(strings.NewReader(`[]`))
	s.ErrorIs(err, ErrInvalidSeed)
}

func (s *SeedSuite) TestLoadActivitiesRejectsTrailingData() {
	doc := `{"A": {"description": "d", "schedule": "s", "max_participants": 5}} {}`

	_, err := LoadActivities(strings.NewReader(doc))
	s.ErrorIs(err, ErrInvalidSeed)
}

// Teachers

func (s *SeedSuite) TestLoadTeachers() {
	doc := `{"teachers": [
		{"username": "mr.smith", "password": "pass123"},
		{"username": "ms.jones", "password_hash": "$2a$10$abcdefghijklmnopqrstuv"}
	]}`

	teachers, err := LoadTeachers(strings.NewReader(doc))
	s.Require().NoError(err)
	s.Require().Len(teachers, 2)
	s.Equal("mr.smith", teachers[0].Username)
	s.Equal("pass123", teachers[0].Password)
	s.NotEmpty(teachers[1].PasswordHash)
}

func (s *SeedSuite) TestLoadTeachersRejectsInvalidRecords() {
	cases := map[string]string{
		"missing list":      `{}`,
		"empty username":    `{"teachers": [{"username": "", "password": "x"}]}`,
		"duplicate":         `{"teachers": [{"username": "a", "password": "x"}, {"username": "a", "password": "y"}]}`,
		"no secret":         `{"teachers": [{"username": "a"}]}`,
		"both secrets":      `{"teachers": [{"username": "a", "password": "x", "password_hash": "y"}]}`,
		"unknown field":     `{"teachers": [{"username": "a", "password": "x", "role": "admin"}]}`,
		"not a json object": `"teachers"`,
	}
	for name, doc := range cases {
		_, err := LoadTeachers(strings.NewReader(doc))
		s.ErrorIs(err, ErrInvalidSeed, name)
	}
}

func (s *SeedSuite) TestLoadTeachersEmptyListIsAllowed() {
	teachers, err := LoadTeachers(strings.NewReader(`{"teachers": []}`))
	s.Require().NoError(err)
	s.Empty(teachers)
}

// Files

func (s *SeedSuite) TestLoadFilesFromDisk() {
	dir := s.T().TempDir()
	activitiesPath := filepath.Join(dir, "activities.json")
	teachersPath := filepath.Join(dir, "teachers.json")
	s.Require().NoError(os.WriteFile(activitiesPath, []byte(`{"A": {"description": "d", "schedule": "s", "max_participants": 1}}`), 0o600))
	s.Require().NoError(os.WriteFile(teachersPath, []byte(`{"teachers": [{"username": "u", "password": "p"}]}`), 0o600))

	activities, err := LoadActivitiesFile(activitiesPath)
	s.Require().NoError(err)
	s.Len(activities, 1)

	teachers, err := LoadTeachersFile(teachersPath)
	s.Require().NoError(err)
	s.Len(teachers, 1)
}

func (s *SeedSuite) TestLoadShippedDataFiles() {
	activities, err := LoadActivitiesFile("../../data/activities.json")
	s.Require().NoError(err)
	s.NotEmpty(activities)

	teachers, err := LoadTeachersFile("../../data/teachers.json")
	s.Require().NoError(err)
	s.NotEmpty(teachers)
}

func (s *SeedSuite) TestLoadMissingFile() {
	_, err := LoadActivitiesFile(filepath.Join(s.T().TempDir(), "nope.json"))
	s.Error(err)
}
