package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == OutputJSON {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintf(o.w, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Activities:
		o.printActivities(v)
	case MessageResult:
		o.printMessage(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Activity response type (matches API)
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Category        string   `json:"category,omitempty"`
	Participants    []string `json:"participants"`
}

// Activities maps activity name to record
type Activities map[string]Activity

// MessageResult is the response of every mutation and of login
type MessageResult struct {
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Server string `json:"server"`
	Status string `json:"status"`
}

func (o *Output) printActivities(activities Activities) {
	names := make([]string, 0, len(activities))
	for name := range activities {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		a := activities[name]
		if i > 0 {
			_, _ = fmt.Fprintln(o.w)
		}
		header := name
		if a.Category != "" {
			header += " [" + a.Category + "]"
		}
		_, _ = fmt.Fprintln(o.w, header)
		_, _ = fmt.Fprintf(o.w, "  %s\n", a.Description)
		_, _ = fmt.Fprintf(o.w, "  Schedule: %s\n", a.Schedule)
		_, _ = fmt.Fprintf(o.w, "  Participants (%d/%d): %s\n",
			len(a.Participants), a.MaxParticipants, strings.Join(a.Participants, ", "))
	}
}

func (o *Output) printMessage(m MessageResult) {
	_, _ = fmt.Fprintln(o.w, m.Message)
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.w, "Server: %s\nStatus: %s\n", h.Server, h.Status)
}
