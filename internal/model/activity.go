package model

import "slices"

// Activity is an extracurricular activity students can sign up for.
// The registry is keyed by Name; participants keep signup order and never repeat.
type Activity struct {
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Category        string   `json:"category,omitempty"`
	Participants    []string `json:"participants"`
}

// HasParticipant reports whether email is signed up
func (a *Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// AddParticipant appends email to the participant list.
// Returns ErrAlreadySignedUp if it is already present.
func (a *Activity) AddParticipant(email string) error {
	if a.HasParticipant(email) {
		return ErrAlreadySignedUp
	}
	a.Participants = append(a.Participants, email)
	return nil
}

// RemoveParticipant removes the first occurrence of email.
// Returns ErrNotSignedUp if it is not present.
func (a *Activity) RemoveParticipant(email string) error {
	idx := slices.Index(a.Participants, email)
	if idx < 0 {
		return ErrNotSignedUp
	}
	a.Participants = slices.Delete(a.Participants, idx, idx+1)
	return nil
}

// Clone returns a deep copy so callers never share the participant slice
func (a *Activity) Clone() *Activity {
	c := *a
	c.Participants = slices.Clone(a.Participants)
	if c.Participants == nil {
		c.Participants = []string{}
	}
	return &c
}

// SpotsLeft returns how many places remain against MaxParticipants.
// Capacity is descriptive only and never blocks a signup, so this can go negative.
func (a *Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}
