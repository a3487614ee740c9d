package accountmap_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncdesk/accountmap"
	"github.com/syncdesk/accountmap/pkg/errors"
	"github.com/syncdesk/accountmap/pkg/resolve"
)

type stubDirectory struct {
	records map[string][]resolve.DirectoryRecord
	calls   int
}

func (s *stubDirectory) Query(_ context.Context, criteria string, _, _ []string) ([]resolve.DirectoryRecord, error) {
	s.calls++
	return s.records[criteria], nil
}

type stubSearcher struct {
	results map[string][]resolve.Candidate
	calls   int
}

func (s *stubSearcher) Search(_ context.Context, text string, _ int) ([]resolve.Candidate, error) {
	s.calls++
	return s.results[text], nil
}

func validConfig() accountmap.Config {
	return accountmap.Config{
		TicketURL:     "https://issues.corp.com",
		TicketToken:   "tok",
		DirectoryURL:  "ldap://ldap.corp.com",
		DirectoryBase: "ou=users,dc=corp,dc=com",
		EmailDomain:   "corp.com",
		Fields: resolve.Fields{
			Query:    []string{"uid"},
			Username: []string{"uid"},
			Mail:     []string{"mail"},
			Name:     []string{"cn"},
			Search:   []string{"uid", "mail", "cn"},
		},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*accountmap.Config)
		wantErr bool
	}{
		{
			name:   "bearer token only",
			mutate: func(_ *accountmap.Config) {},
		},
		{
			name: "basic auth pair",
			mutate: func(c *accountmap.Config) {
				c.TicketToken = ""
				c.TicketUser = "svc"
				c.TicketPassword = "secret"
			},
		},
		{
			name: "no credentials",
			mutate: func(c *accountmap.Config) {
				c.TicketToken = ""
			},
			wantErr: true,
		},
		{
			name: "user without password",
			mutate: func(c *accountmap.Config) {
				c.TicketUser = "svc"
			},
			wantErr: true,
		},
		{
			name: "password without user",
			mutate: func(c *accountmap.Config) {
				c.TicketPassword = "secret"
			},
			wantErr: true,
		},
		{
			name:    "missing ticket URL",
			mutate:  func(c *accountmap.Config) { c.TicketURL = "" },
			wantErr: true,
		},
		{
			name:    "missing directory URL",
			mutate:  func(c *accountmap.Config) { c.DirectoryURL = "" },
			wantErr: true,
		},
		{
			name:    "missing directory base",
			mutate:  func(c *accountmap.Config) { c.DirectoryBase = "" },
			wantErr: true,
		},
		{
			name:    "missing email domain",
			mutate:  func(c *accountmap.Config) { c.EmailDomain = "" },
			wantErr: true,
		},
		{
			name:    "missing query fields",
			mutate:  func(c *accountmap.Config) { c.Fields.Query = nil },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			_, err := accountmap.New(cfg)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestResolveAllOverrideScenario(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "map.json")
	require.NoError(t, os.WriteFile(dir, []byte(`{"alice": "alice.j"}`), 0o644))

	directory := &stubDirectory{}
	search := &stubSearcher{}

	mapper, err := accountmap.New(validConfig(),
		accountmap.WithDirectory(directory),
		accountmap.WithAccountSearcher(search),
		accountmap.WithOverrideMapFile(dir),
	)
	require.NoError(t, err)

	results, err := mapper.ResolveAll(context.Background(), []string{"alice"}, 0)
	require.NoError(t, err)

	assert.Equal(t, resolve.BatchResult{
		"alice": {Status: resolve.StatusFound, AccountID: "alice.j"},
	}, results)
	assert.Zero(t, directory.calls, "override map must bypass the directory")
	assert.Zero(t, search.calls, "override map must bypass ticket search")
}

func TestResolveAllGhostAndBobScenario(t *testing.T) {
	directory := &stubDirectory{records: map[string][]resolve.DirectoryRecord{
		"bob": {{
			"uid":  {"bob"},
			"mail": {"bob@corp.com"},
			"cn":   {"Bob Smith"},
		}},
	}}
	search := &stubSearcher{results: map[string][]resolve.Candidate{
		"bob": {
			{AccountID: "bjones", DisplayName: "Bob Jones", Email: "bjones@corp.com"},
			{AccountID: "bsmith", DisplayName: "Bob Smith", Email: "bob@corp.com"},
		},
	}}

	mapper, err := accountmap.New(validConfig(),
		accountmap.WithDirectory(directory),
		accountmap.WithAccountSearcher(search),
	)
	require.NoError(t, err)

	results, err := mapper.ResolveAll(context.Background(), []string{"bob", "ghost"}, 4)
	require.NoError(t, err)

	assert.Equal(t, resolve.BatchResult{
		"bob":   {Status: resolve.StatusFound, AccountID: "bsmith"},
		"ghost": {Status: resolve.StatusNotInDirectory},
	}, results)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accountmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ticket_url: https://issues.corp.com
ticket_token: tok
directory_url: ldap://ldap.corp.com
directory_base: ou=users,dc=corp,dc=com
email_domain: corp.com
override_map_file: usermap.csv
fields:
  query: [uid]
  username: [uid]
  mail: [mail, mailAlternate]
  name: [cn, displayName]
  search: [uid, mail, cn]
`), 0o644))

	cfg, err := accountmap.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://issues.corp.com", cfg.TicketURL)
	assert.Equal(t, "corp.com", cfg.EmailDomain)
	assert.Equal(t, "usermap.csv", cfg.OverrideMapFile)
	assert.Equal(t, []string{"mail", "mailAlternate"}, cfg.Fields.Mail)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := accountmap.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}
