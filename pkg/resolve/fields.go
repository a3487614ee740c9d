package resolve

import "github.com/syncdesk/accountmap/pkg/errors"

// Fields configures which directory attributes drive matching and search.
type Fields struct {
	// Query lists the attributes the input user name is matched against when
	// querying the directory. The query attribute set should be unique-valued;
	// multiple records for one user name are treated as an anomaly.
	Query []string `yaml:"query"`
	// Username lists the attributes compared against ticket account ids.
	Username []string `yaml:"username"`
	// Mail lists the attributes compared against ticket account emails.
	Mail []string `yaml:"mail"`
	// Name lists the attributes compared against account ids and display
	// names for partial matching.
	Name []string `yaml:"name"`
	// Search lists the attributes whose values seed ticket searches, in
	// order of preference.
	Search []string `yaml:"search"`
}

// Validate checks that the field configuration can drive a resolution.
func (f Fields) Validate() error {
	if len(f.Query) == 0 {
		return errors.NewValidationError("query", f.Query, "at least one directory query field is required")
	}
	if len(f.Search) == 0 {
		return errors.NewValidationError("search", f.Search, "at least one ticket search field is required")
	}
	return nil
}

// ReturnFields returns the union of the username-match, email-match and
// ticket-search fields: the attribute set requested from the directory.
func (f Fields) ReturnFields() []string {
	seen := make(map[string]bool)
	var union []string
	for _, list := range [][]string{f.Username, f.Mail, f.Search} {
		for _, field := range list {
			if field != "" && !seen[field] {
				seen[field] = true
				union = append(union, field)
			}
		}
	}
	return union
}
