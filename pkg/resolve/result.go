package resolve

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status classifies the outcome of resolving one user name.
type Status string

// Possible resolution statuses.
const (
	// StatusFound means a good match was found in the ticketing system.
	StatusFound Status = "found"
	// StatusMissing means no match was found in the ticketing system.
	StatusMissing Status = "missing"
	// StatusAmbiguous means no good match; possible matches are in Candidates.
	StatusAmbiguous Status = "ambiguous"
	// StatusNotInDirectory means the user name has no directory record.
	StatusNotInDirectory Status = "not_in_directory"
)

// Title returns the status as human-readable text, e.g. "Not In Directory".
// A fresh caser per call: cases.Caser is stateful and not goroutine-safe.
func (s Status) Title() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(s), "_", " "))
}

// Result is the immutable verdict for a single user name.
type Result struct {
	Status    Status `json:"status"`
	AccountID string `json:"accountId,omitempty"`
	// Candidates holds the account ids observed across all seed searches, in
	// first-seen order. Only populated for StatusAmbiguous.
	Candidates []string `json:"candidates,omitempty"`
}

// BatchResult maps each distinct non-empty input user name to its Result.
type BatchResult map[string]Result
