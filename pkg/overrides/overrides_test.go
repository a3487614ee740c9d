package overrides_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncdesk/accountmap/pkg/errors"
	"github.com/syncdesk/accountmap/pkg/overrides"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "map.json", `{"us1json": "us1jira", "us2json": "us2jira"}`)

	m, err := overrides.Load(path)
	require.NoError(t, err)
	assert.Equal(t, overrides.Map{"us1json": "us1jira", "us2json": "us2jira"}, m)
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "map.csv", "us1csv,us1jira\nus2csv,us2jira\n")

	m, err := overrides.Load(path)
	require.NoError(t, err)
	assert.Equal(t, overrides.Map{"us1csv": "us1jira", "us2csv": "us2jira"}, m)
}

func TestLoadEmptyPath(t *testing.T) {
	m, err := overrides.Load("")
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	m, err := overrides.Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestLoadUnknownExtension(t *testing.T) {
	path := writeFile(t, "map.txt", "whatever")

	m, err := overrides.Load(path)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestLoadMalformedJSON(t *testing.T) {
	path := writeFile(t, "map.json", `{"broken`)

	_, err := overrides.Load(path)
	require.Error(t, err)

	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestLoadShortCSVRow(t *testing.T) {
	path := writeFile(t, "map.csv", "only-one-column\n")

	_, err := overrides.Load(path)
	require.Error(t, err)

	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}
