package response

import (
	"github.com/mcoot/mergington-activities/internal/model"
)

// StatusSuccess is the status value of teacher-path and login responses
const StatusSuccess = "success"

// MessageResponse is the response for every mutation and for login.
// The open path omits Status.
type MessageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

// Activity is a single activity in the listing, keyed by name in Activities
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Category        string   `json:"category,omitempty"`
	Participants    []string `json:"participants"`
}

// Activities is the GET /activities body: activity name to record
type Activities map[string]Activity

// ActivitiesFromModel converts the registry listing
func ActivitiesFromModel(activities []*model.Activity) Activities {
	out := make(Activities, len(activities))
	for _, a := range activities {
		participants := a.Participants
		if participants == nil {
			participants = []string{}
		}
		out[a.Name] = Activity{
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Category:        a.Category,
			Participants:    participants,
		}
	}
	return out
}

// Health is the GET /health body
type Health struct {
	Status string `json:"status"`
}
