package accountmap

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/syncdesk/accountmap/pkg/errors"
	"github.com/syncdesk/accountmap/pkg/resolve"
)

// Config holds the full configuration surface: the ticketing-system endpoint
// and credentials, the directory endpoint and search base, the field lists
// driving matching and search, the organization email domain, and an optional
// override-map file path.
//
// Exactly one ticketing credential scheme must be set: a complete basic-auth
// pair (TicketUser + TicketPassword) or a bearer token (TicketToken).
type Config struct {
	// TicketURL is the ticketing-system server URL, e.g. "https://issues.example.org".
	TicketURL string `yaml:"ticket_url"`
	// TicketUser and TicketPassword form the basic-auth pair.
	TicketUser     string `yaml:"ticket_user"`
	TicketPassword string `yaml:"ticket_password"`
	// TicketToken is the bearer token alternative to basic auth.
	TicketToken string `yaml:"ticket_token"`

	// DirectoryURL is the directory server URL, e.g. "ldap://ldaphost".
	DirectoryURL string `yaml:"directory_url"`
	// DirectoryBase is the base for directory queries, e.g. "ou=users,dc=dep,dc=org".
	DirectoryBase string `yaml:"directory_base"`
	// DirectoryBindDN and DirectoryBindPassword are optional simple-bind
	// credentials; without them queries bind anonymously.
	DirectoryBindDN       string `yaml:"directory_bind_dn"`
	DirectoryBindPassword string `yaml:"directory_bind_password"`

	// Fields configures which directory attributes drive matching and search.
	Fields resolve.Fields `yaml:"fields"`

	// EmailDomain is the organization email domain accounts must belong to,
	// with or without a leading @.
	EmailDomain string `yaml:"email_domain"`

	// OverrideMapFile optionally points at a json or csv user map consulted
	// before any lookup.
	OverrideMapFile string `yaml:"override_map_file"`

	maxResults int
}

// LoadConfig reads a Config from a YAML file.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.WrapIO("read", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.WrapParse("yaml", path, err)
	}
	return cfg, nil
}
