package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/mcoot/mergington-activities/internal/model"
	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()

	err := s.storage.SaveActivities(s.ctx, []*model.Activity{
		{Name: "Chess Club", Description: "Chess", Schedule: "Fridays", MaxParticipants: 12, Participants: []string{"michael@x.com"}},
		{Name: "Art Club", Description: "Art", Schedule: "Thursdays", MaxParticipants: 15},
	})
	s.Require().NoError(err)
}

// Seeding tests

func (s *StorageSuite) TestHasActivities() {
	has, err := s.storage.HasActivities(s.ctx)
	s.Require().NoError(err)
	s.True(has)

	has, err = New().HasActivities(s.ctx)
	s.Require().NoError(err)
	s.False(has)
}

func (s *StorageSuite) TestSaveActivitiesReplacesExisting() {
	err := s.storage.SaveActivities(s.ctx, []*model.Activity{{Name: "Drama Club"}})
	s.Require().NoError(err)

	activities, err := s.storage.ListActivities(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(activities, 1)
	s.Equal("Drama Club", activities[0].Name)
}

func (s *StorageSuite) TestSaveActivitiesCopiesInput() {
	input := &model.Activity{Name: "Drama Club", Participants: []string{"a@x.com"}}
	_ = s.storage.SaveActivities(s.ctx, []*model.Activity{input})

	input.Participants[0] = "mutated@x.com"

	stored, err := s.storage.GetActivity(s.ctx, "Drama Club")
	s.Require().NoError(err)
	s.Equal([]string{"a@x.com"}, stored.Participants)
}

// Read tests

func (s *StorageSuite) TestListActivitiesSortedByName() {
	activities, err := s.storage.ListActivities(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(activities, 2)
	s.Equal("Art Club", activities[0].Name)
	s.Equal("Chess Club", activities[1].Name)
}

func (s *StorageSuite) TestGetActivity() {
	activity, err := s.storage.GetActivity(s.ctx, "Chess Club")
	s.Require().NoError(err)
	s.Equal("Fridays", activity.Schedule)
	s.Equal(12, activity.MaxParticipants)
	s.Equal([]string{"michael@x.com"}, activity.Participants)
}

func (s *StorageSuite) TestGetActivityNotFound() {
	_, err := s.storage.GetActivity(s.ctx, "Knitting")
	s.ErrorIs(err, model.ErrActivityNotFound)
}

func (s *StorageSuite) TestReadsReturnCopies() {
	activity, _ := s.storage.GetActivity(s.ctx, "Chess Club")
	activity.Participants = append(activity.Participants, "intruder@x.com")

	stored, _ := s.storage.GetActivity(s.ctx, "Chess Club")
	s.Equal([]string{"michael@x.com"}, stored.Participants)
}

// Participant tests

func (s *StorageSuite) TestAddParticipant() {
	err := s.storage.AddParticipant(s.ctx, "Chess Club", "a@x.com")
	s.Require().NoError(err)

	activity, _ := s.storage.GetActivity(s.ctx, "Chess Club")
	s.Equal([]string{"michael@x.com", "a@x.com"}, activity.Participants)
}

func (s *StorageSuite) TestAddParticipantDuplicate() {
	err := s.storage.AddParticipant(s.ctx, "Chess Club", "michael@x.com")
	s.ErrorIs(err, model.ErrAlreadySignedUp)

	activity, _ := s.storage.GetActivity(s.ctx, "Chess Club")
	s.Len(activity.Participants, 1)
}

func (s *StorageSuite) TestAddParticipantUnknownActivity() {
	err := s.storage.AddParticipant(s.ctx, "Knitting", "a@x.com")
	s.ErrorIs(err, model.ErrActivityNotFound)
}

func (s *StorageSuite) TestRemoveParticipant() {
	_ = s.storage.AddParticipant(s.ctx, "Chess Club", "a@x.com")

	err := s.storage.RemoveParticipant(s.ctx, "Chess Club", "michael@x.com")
	s.Require().NoError(err)

	activity, _ := s.storage.GetActivity(s.ctx, "Chess Club")
	s.Equal([]string{"a@x.com"}, activity.Participants)
}

func (s *StorageSuite) TestRemoveParticipantNotSignedUp() {
	err := s.storage.RemoveParticipant(s.ctx, "Art Club", "a@x.com")
	s.ErrorIs(err, model.ErrNotSignedUp)
}

func (s *StorageSuite) TestRemoveParticipantUnknownActivity() {
	err := s.storage.RemoveParticipant(s.ctx, "Knitting", "a@x.com")
	s.ErrorIs(err, model.ErrActivityNotFound)
}

// Concurrency

func (s *StorageSuite) TestConcurrentSignupsAreNotLost() {
	const n = 100
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.storage.AddParticipant(s.ctx, "Art Club", fmt.Sprintf("student%d@x.com", i))
		}()
	}
	wg.Wait()

	activity, err := s.storage.GetActivity(s.ctx, "Art Club")
	s.Require().NoError(err)
	s.Len(activity.Participants, n)
}

func (s *StorageSuite) TestConcurrentDuplicateSignupSucceedsOnce() {
	const n = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.storage.AddParticipant(s.ctx, "Art Club", "same@x.com"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(1, successes)
	activity, _ := s.storage.GetActivity(s.ctx, "Art Club")
	s.Equal([]string{"same@x.com"}, activity.Participants)
}
