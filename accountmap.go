// Package accountmap finds matching ticketing-system accounts for directory
// user names.
//
// It checks whether a user name has a directory record, gets user name and
// email alternatives from the directory, and looks for matching accounts in
// the ticketing system. Optionally a user map file (json, csv) bypasses
// dynamic resolution for known names.
//
// Usage:
//   - Build a Config and call New
//   - Use Mapper.ResolveAll for a batch of user names
package accountmap

import (
	"context"

	"github.com/syncdesk/accountmap/internal/directory"
	"github.com/syncdesk/accountmap/internal/tickets"
	"github.com/syncdesk/accountmap/internal/transport"
	"github.com/syncdesk/accountmap/pkg/errors"
	"github.com/syncdesk/accountmap/pkg/overrides"
	"github.com/syncdesk/accountmap/pkg/resolve"
)

// Mapper resolves batches of directory user names to ticketing accounts.
// Construct with New; a Mapper is safe for concurrent use.
type Mapper struct {
	cfg       Config
	directory resolve.DirectorySearcher
	accounts  resolve.AccountSearcher
}

// New validates the configuration and constructs a Mapper with its adapters.
// Configuration problems are fatal here; a batch never starts with a broken
// credential or field setup.
func New(cfg Config, opts ...Option) (*Mapper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &config{maxResults: resolve.DefaultMaxResults}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	cfg.maxResults = c.maxResults
	if c.overrideMapFile != "" {
		cfg.OverrideMapFile = c.overrideMapFile
	}

	m := &Mapper{cfg: cfg}

	if c.directory != nil {
		m.directory = c.directory
	} else {
		m.directory = directory.New(cfg.DirectoryURL, cfg.DirectoryBase).
			WithBind(cfg.DirectoryBindDN, cfg.DirectoryBindPassword)
	}

	if c.accounts != nil {
		m.accounts = c.accounts
	} else {
		client := tickets.NewClient(cfg.TicketURL, cfg.authenticator())
		if c.httpClient != nil {
			client.WithHTTPClient(c.httpClient)
		}
		m.accounts = client
	}

	return m, nil
}

// ResolveAll finds matching ticketing accounts for the given user names.
//
// The override map file is loaded once per batch. Each distinct non-empty
// user name resolves in its own task, bounded to maxConcurrency simultaneous
// tasks (zero means unbounded). Failed resolutions are isolated per user
// name: ResolveAll returns the partial results together with the joined
// per-user errors.
func (m *Mapper) ResolveAll(ctx context.Context, usernames []string, maxConcurrency int) (resolve.BatchResult, error) {
	overrideMap, err := overrides.Load(m.cfg.OverrideMapFile)
	if err != nil {
		return nil, err
	}

	engine := resolve.NewEngine(m.directory, m.accounts, m.cfg.Fields, m.cfg.EmailDomain).
		WithOverrides(overrideMap).
		WithMaxResults(m.cfg.maxResults)

	return resolve.NewBatch(engine).
		WithMaxConcurrency(maxConcurrency).
		ResolveAll(ctx, usernames)
}

// authenticator returns the transport authenticator matching the configured
// credential scheme. Basic auth wins when both schemes are set.
func (c *Config) authenticator() transport.Authenticator {
	if c.TicketUser != "" {
		return &transport.BasicAuth{Username: c.TicketUser, Password: c.TicketPassword}
	}
	if c.TicketToken != "" {
		return &transport.BearerAuth{Token: c.TicketToken}
	}
	return &transport.NoAuth{}
}

// Validate checks the configuration. Exactly one ticketing credential scheme
// is required: a complete basic-auth pair or a bearer token.
func (c *Config) Validate() error {
	if c.TicketURL == "" {
		return errors.NewConfigError("tickets", "ticketing-system URL is required", nil)
	}
	if c.TicketUser != "" || c.TicketPassword != "" {
		if c.TicketUser == "" || c.TicketPassword == "" {
			return errors.NewConfigError("tickets", "user and password are both required for basic auth", nil)
		}
	} else if c.TicketToken == "" {
		return errors.NewConfigError("tickets", "user/password or auth token required", errors.ErrCredentialsRequired)
	}

	if c.DirectoryURL == "" {
		return errors.NewConfigError("directory", "directory URL is required", nil)
	}
	if c.DirectoryBase == "" {
		return errors.NewConfigError("directory", "directory search base is required", nil)
	}
	if c.EmailDomain == "" {
		return errors.NewConfigError("scorer", "organization email domain is required", nil)
	}

	return c.Fields.Validate()
}
