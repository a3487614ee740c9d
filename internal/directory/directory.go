// Package directory implements the identity source adapter over LDAP.
package directory

import (
	"context"
	"strings"

	"github.com/go-ldap/ldap/v3"

	"github.com/syncdesk/accountmap/pkg/errors"
	"github.com/syncdesk/accountmap/pkg/logging"
	"github.com/syncdesk/accountmap/pkg/resolve"
)

// Lookup implements the resolve.DirectorySearcher interface against an LDAP
// server. A connection is dialed per query; the resolution batch holds no
// long-lived directory state.
type Lookup struct {
	url          string // e.g. "ldap://ldaphost"
	base         string // e.g. "ou=users,dc=dep,dc=org"
	bindDN       string
	bindPassword string
}

// New creates a directory lookup for the given server URL and search base.
func New(url, base string) *Lookup {
	return &Lookup{url: url, base: base}
}

// WithBind sets simple-bind credentials. Without them queries bind
// anonymously.
func (l *Lookup) WithBind(dn, password string) *Lookup {
	l.bindDN = dn
	l.bindPassword = password
	return l
}

// Query matches criteria against each of queryFields and returns the records
// found under the configured base, restricted to returnFields.
func (l *Lookup) Query(ctx context.Context, criteria string, queryFields, returnFields []string) ([]resolve.DirectoryRecord, error) {
	conn, err := ldap.DialURL(l.url)
	if err != nil {
		return nil, &errors.DirectoryError{
			Operation: "connect",
			Message:   "failed to dial " + l.url,
			Err:       err,
		}
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("Failed to close directory connection")
		}
	}()

	if l.bindDN != "" {
		if err := conn.Bind(l.bindDN, l.bindPassword); err != nil {
			return nil, &errors.DirectoryError{
				Operation: "bind",
				Message:   "simple bind failed for " + l.bindDN,
				Err:       err,
			}
		}
	}

	filter := Filter(criteria, queryFields)
	logging.FromContext(ctx).Debug().
		Str("filter", filter).
		Str("base", l.base).
		Msg("Directory search")

	request := ldap.NewSearchRequest(
		l.base,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, 0, false,
		filter,
		returnFields,
		nil,
	)

	result, err := conn.Search(request)
	if err != nil {
		return nil, &errors.DirectoryError{
			Operation: "search",
			Base:      l.base,
			Message:   "search failed",
			Err:       err,
		}
	}

	records := make([]resolve.DirectoryRecord, 0, len(result.Entries))
	for _, entry := range result.Entries {
		record := make(resolve.DirectoryRecord, len(entry.Attributes))
		for _, attr := range entry.Attributes {
			record[attr.Name] = attr.Values
		}
		records = append(records, record)
	}
	return records, nil
}

// Filter builds the LDAP search filter matching criteria against each of the
// given fields, OR-ed together. The criteria value is escaped.
func Filter(criteria string, queryFields []string) string {
	escaped := ldap.EscapeFilter(criteria)

	clauses := make([]string, 0, len(queryFields))
	for _, field := range queryFields {
		clauses = append(clauses, "("+field+"="+escaped+")")
	}
	if len(clauses) == 1 {
		return clauses[0]
	}
	return "(|" + strings.Join(clauses, "") + ")"
}
