// Package overrides loads the static user-name to account-id map that takes
// absolute precedence over dynamic resolution. Two file formats are accepted:
// a flat JSON object of username -> accountId pairs, or CSV rows whose first
// column is the source user name and second column the account id.
package overrides

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/syncdesk/accountmap/pkg/errors"
	"github.com/syncdesk/accountmap/pkg/logging"
)

// Map is a static user-name -> account-id mapping. Any user name present in
// the map bypasses directory and ticket-search lookups entirely.
type Map map[string]string

// Load reads a mapping from a JSON or CSV file.
//
// An empty path or a missing file yields an empty map and a warning, never an
// error. Malformed content is an error. Files with an unrecognized extension
// load as an empty map.
func Load(path string) (Map, error) {
	if path == "" {
		return Map{}, nil
	}

	if _, err := os.Stat(path); err != nil {
		logging.Warn().Str("path", path).Msg("Override map file doesn't exist")
		return Map{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	switch filepath.Ext(path) {
	case ".json":
		m := Map{}
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, errors.WrapParse("json", path, err)
		}
		return m, nil

	case ".csv":
		rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		if err != nil {
			return nil, errors.WrapParse("csv", path, err)
		}
		m := make(Map, len(rows))
		for _, row := range rows {
			if len(row) < 2 {
				return nil, &errors.ParseError{
					Format:  "csv",
					File:    path,
					Message: "expected at least two columns per row",
				}
			}
			m[row[0]] = row[1]
		}
		return m, nil

	default:
		logging.Warn().Str("path", path).Msg("Unrecognized override map format")
		return Map{}, nil
	}
}
