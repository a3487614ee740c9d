package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/syncdesk/accountmap"
	"github.com/syncdesk/accountmap/pkg/logging"
)

// newResolveCommand creates the resolve command.
func newResolveCommand() *cobra.Command {
	var (
		concurrency int
		mapFile     string
		maxResults  int
	)

	cmd := &cobra.Command{
		Use:   "resolve [username...]",
		Short: "Resolve directory user names to ticketing accounts",
		Long: `Resolve looks up each user name in the directory and searches the
ticketing system for a matching account. User names are taken from the
arguments, or from stdin (one per line) when no arguments are given.

Results are printed to stdout as a JSON object keyed by user name; each value
carries a status (found, missing, ambiguous, not_in_directory), the resolved
account id for found names, and the candidate ids for ambiguous ones.`,
		Example: `  accountmap resolve alice bob carol
  cat usernames.txt | accountmap resolve --concurrency 8
  accountmap resolve --map-file usermap.csv alice`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadMapperConfig()
			if err != nil {
				return err
			}
			usernames := args
			if len(usernames) == 0 {
				usernames, err = readUsernames(os.Stdin)
				if err != nil {
					return err
				}
			}

			mapper, err := accountmap.New(cfg,
				accountmap.WithMaxResults(maxResults),
				accountmap.WithOverrideMapFile(mapFile),
			)
			if err != nil {
				return err
			}

			results, resolveErr := mapper.ResolveAll(cmd.Context(), usernames, concurrency)
			if results == nil {
				return resolveErr
			}

			out, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if resolveErr != nil {
				logging.Err(resolveErr).Msg("Some user names failed to resolve")
				return resolveErr
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "maximum simultaneous resolution tasks (0 = unbounded)")
	cmd.Flags().StringVar(&mapFile, "map-file", "", "json or csv user map consulted before any lookup")
	cmd.Flags().IntVar(&maxResults, "max-results", 0, "ticket-search result cap per seed (default 10)")

	return cmd
}

// loadMapperConfig reads the YAML config file and layers credential
// environment variables on top.
func loadMapperConfig() (accountmap.Config, error) {
	path := configFile
	if path == "" {
		path = "accountmap.yaml"
	}

	cfg, err := accountmap.LoadConfig(path)
	if err != nil {
		return cfg, err
	}

	// Credentials belong in the environment, not the config file.
	envOverride(&cfg.TicketUser, "ticket_user")
	envOverride(&cfg.TicketPassword, "ticket_password")
	envOverride(&cfg.TicketToken, "ticket_token")
	envOverride(&cfg.DirectoryBindDN, "directory_bind_dn")
	envOverride(&cfg.DirectoryBindPassword, "directory_bind_password")

	return cfg, nil
}

// envOverride replaces dst with the viper/environment value for key, if set.
func envOverride(dst *string, key string) {
	if v := viper.GetString(key); v != "" {
		*dst = v
	}
}

// readUsernames reads one user name per line, skipping blank lines.
func readUsernames(f *os.File) ([]string, error) {
	var usernames []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			usernames = append(usernames, line)
		}
	}
	return usernames, scanner.Err()
}
