// Package resolve implements the account resolution engine: a per-user-name
// multi-stage lookup that maps directory user names to ticketing-system
// accounts, and a batch coordinator that runs the engine concurrently over a
// list of user names.
//
// Resolution order for a single user name:
//
//  1. Override map hit returns immediately.
//  2. The directory is queried for exactly one record.
//  3. Configured record fields seed free-text account searches, in order.
//  4. Candidates are scored against the record until a full match is found.
//  5. Failing a full match, a single partial match from a single-result
//     search resolves; otherwise the collected candidates are ambiguous.
package resolve

import "context"

// DirectoryRecord is a single directory entry, keyed by attribute name.
// Directory attributes may carry multiple values.
type DirectoryRecord map[string][]string

// valueSet collects every value of the given attributes that are present in
// the record.
func (r DirectoryRecord) valueSet(fields []string) map[string]bool {
	set := make(map[string]bool)
	for _, f := range fields {
		for _, v := range r[f] {
			if v != "" {
				set[v] = true
			}
		}
	}
	return set
}

// Candidate is a ticketing-system account returned by search. Identity is
// AccountID.
type Candidate struct {
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Score is the verdict of comparing one directory record against one
// candidate account.
type Score int

// Scores in order of preference: Match > PartialMatch > NoMatch.
const (
	NoMatch Score = iota
	PartialMatch
	Match
)

// String returns a human-readable score name.
func (s Score) String() string {
	switch s {
	case Match:
		return "match"
	case PartialMatch:
		return "partial match"
	default:
		return "no match"
	}
}

// DirectorySearcher performs attribute queries against the directory service.
type DirectorySearcher interface {
	// Query matches criteria against each of queryFields and returns the
	// records found, restricted to returnFields.
	Query(ctx context.Context, criteria string, queryFields, returnFields []string) ([]DirectoryRecord, error)
}

// AccountSearcher performs free-text account search against the ticketing
// system.
type AccountSearcher interface {
	// Search returns up to maxResults accounts matching the given text.
	Search(ctx context.Context, text string, maxResults int) ([]Candidate, error)
}
