package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddParticipantKeepsSignupOrder(t *testing.T) {
	a := &Activity{Name: "Chess Club"}

	require.NoError(t, a.AddParticipant("b@x.com"))
	require.NoError(t, a.AddParticipant("a@x.com"))

	assert.Equal(t, []string{"b@x.com", "a@x.com"}, a.Participants)
}

func TestAddParticipantRejectsDuplicate(t *testing.T) {
	a := &Activity{Name: "Chess Club", Participants: []string{"a@x.com"}}

	err := a.AddParticipant("a@x.com")

	assert.ErrorIs(t, err, ErrAlreadySignedUp)
	assert.Equal(t, []string{"a@x.com"}, a.Participants)
}

func TestParticipantMatchIsCaseSensitive(t *testing.T) {
	a := &Activity{Name: "Chess Club", Participants: []string{"a@x.com"}}

	require.NoError(t, a.AddParticipant("A@x.com"))
	assert.Len(t, a.Participants, 2)
}

func TestRemoveParticipantLeavesOthers(t *testing.T) {
	a := &Activity{Participants: []string{"a@x.com", "b@x.com", "c@x.com"}}

	require.NoError(t, a.RemoveParticipant("b@x.com"))

	assert.Equal(t, []string{"a@x.com", "c@x.com"}, a.Participants)
}

func TestRemoveParticipantNotPresent(t *testing.T) {
	a := &Activity{Participants: []string{"a@x.com"}}

	err := a.RemoveParticipant("z@x.com")

	assert.ErrorIs(t, err, ErrNotSignedUp)
	assert.Equal(t, []string{"a@x.com"}, a.Participants)
}

func TestCloneDoesNotShareParticipants(t *testing.T) {
	a := &Activity{Name: "Art", Participants: []string{"a@x.com"}}

	c := a.Clone()
	c.Participants[0] = "changed@x.com"

	assert.Equal(t, "a@x.com", a.Participants[0])
}

func TestCloneOfEmptyActivityHasNonNilParticipants(t *testing.T) {
	a := &Activity{Name: "Art"}

	assert.NotNil(t, a.Clone().Participants)
}

func TestSpotsLeft(t *testing.T) {
	a := &Activity{MaxParticipants: 2, Participants: []string{"a@x.com", "b@x.com", "c@x.com"}}

	assert.Equal(t, -1, a.SpotsLeft())
}
