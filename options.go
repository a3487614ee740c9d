package accountmap

import (
	"net/http"

	"github.com/syncdesk/accountmap/pkg/resolve"
)

// config holds option-applied construction state for a Mapper.
type config struct {
	directory       resolve.DirectorySearcher
	accounts        resolve.AccountSearcher
	httpClient      *http.Client
	maxResults      int
	overrideMapFile string
}

// Option is a function that configures a Mapper instance
type Option func(*config) error

// WithDirectory injects an already-constructed directory adapter instead of
// the default LDAP lookup.
func WithDirectory(d resolve.DirectorySearcher) Option {
	return func(c *config) error {
		c.directory = d
		return nil
	}
}

// WithAccountSearcher injects an already-constructed ticket account search
// adapter instead of the default REST client.
func WithAccountSearcher(a resolve.AccountSearcher) Option {
	return func(c *config) error {
		c.accounts = a
		return nil
	}
}

// WithHTTPClient configures the HTTP client used by the default ticket
// search adapter.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *config) error {
		c.httpClient = httpClient
		return nil
	}
}

// WithOverrideMapFile points the Mapper at a json or csv user map consulted
// before any lookup, replacing the configured path.
func WithOverrideMapFile(path string) Option {
	return func(c *config) error {
		c.overrideMapFile = path
		return nil
	}
}

// WithMaxResults configures the ticket-search result cap per seed.
func WithMaxResults(n int) Option {
	return func(c *config) error {
		if n > 0 {
			c.maxResults = n
		}
		return nil
	}
}
