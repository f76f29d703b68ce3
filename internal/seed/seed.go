// Package seed parses the startup documents that populate the activity
// registry and the teacher credential store.
package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mcoot/mergington-activities/internal/model"
)

// ErrInvalidSeed is wrapped by every validation failure
var ErrInvalidSeed = errors.New("invalid seed data")

type activityRecord struct {
	Description     *string  `json:"description"`
	Schedule        *string  `json:"schedule"`
	MaxParticipants *int     `json:"max_participants"`
	Category        string   `json:"category"`
	Participants    []string `json:"participants"`
}

type teachersDocument struct {
	Teachers []model.Credential `json:"teachers"`
}

// LoadActivitiesFile reads and validates an activities document from disk
func LoadActivitiesFile(path string) ([]*model.Activity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open activities file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadActivities(f)
}

// LoadActivities decodes a mapping of activity name to record.
// Activities are returned sorted by name.
func LoadActivities(r io.Reader) ([]*model.Activity, error) {
	var doc map[string]activityRecord
	if err := decodeStrict(r, &doc); err != nil {
		return nil, fmt.Errorf("%w: activities: %w", ErrInvalidSeed, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: activities: document must be an object", ErrInvalidSeed)
	}

	var errs []error
	activities := make([]*model.Activity, 0, len(doc))
	for name, rec := range doc {
		activity, err := rec.toModel(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		activities = append(activities, activity)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSeed, errors.Join(errs...))
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Name < activities[j].Name
	})
	return activities, nil
}

func (rec activityRecord) toModel(name string) (*model.Activity, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("activity name must not be empty")
	}
	if rec.Description == nil {
		return nil, fmt.Errorf("activity %q: description is required", name)
	}
	if rec.Schedule == nil {
		return nil, fmt.Errorf("activity %q: schedule is required", name)
	}
	if rec.MaxParticipants == nil {
		return nil, fmt.Errorf("activity %q: max_participants is required", name)
	}
	if *rec.MaxParticipants < 0 {
		return nil, fmt.Errorf("activity %q: max_participants must not be negative", name)
	}

	activity := &model.Activity{
		Name:            name,
		Description:     *rec.Description,
		Schedule:        *rec.Schedule,
		MaxParticipants: *rec.MaxParticipants,
		Category:        rec.Category,
		Participants:    make([]string, 0, len(rec.Participants)),
	}
	for _, email := range rec.Participants {
		if email == "" {
			return nil, fmt.Errorf("activity %q: participant email must not be empty", name)
		}
		if err := activity.AddParticipant(email); err != nil {
			return nil, fmt.Errorf("activity %q: duplicate participant %q", name, email)
		}
	}
	return activity, nil
}

// LoadTeachersFile reads and validates a teachers document from disk
func LoadTeachersFile(path string) ([]model.Credential, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open teachers file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadTeachers(f)
}

// LoadTeachers decodes a {"teachers": [...]} document
func LoadTeachers(r io.Reader) ([]model.Credential, error) {
	var doc teachersDocument
	if err := decodeStrict(r, &doc); err != nil {
		return nil, fmt.Errorf("%w: teachers: %w", ErrInvalidSeed, err)
	}
	if doc.Teachers == nil {
		return nil, fmt.Errorf("%w: teachers: missing \"teachers\" list", ErrInvalidSeed)
	}

	seen := make(map[string]bool, len(doc.Teachers))
	for i, cred := range doc.Teachers {
		switch {
		case cred.Username == "":
			return nil, fmt.Errorf("%w: teacher %d: username is required", ErrInvalidSeed, i)
		case seen[cred.Username]:
			return nil, fmt.Errorf("%w: teacher %q: duplicate username", ErrInvalidSeed, cred.Username)
		case cred.Password == "" && cred.PasswordHash == "":
			return nil, fmt.Errorf("%w: teacher %q: password or password_hash is required", ErrInvalidSeed, cred.Username)
		case cred.Password != "" && cred.PasswordHash != "":
			return nil, fmt.Errorf("%w: teacher %q: set only one of password and password_hash", ErrInvalidSeed, cred.Username)
		}
		seen[cred.Username] = true
	}
	return doc.Teachers, nil
}

// decodeStrict decodes a single JSON value, rejecting unknown fields and trailing data
func decodeStrict(r io.Reader, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON document")
	}
	return nil
}
