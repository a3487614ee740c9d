package resolve_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncdesk/accountmap/pkg/resolve"
)

func TestStatusTitle(t *testing.T) {
	assert.Equal(t, "Found", resolve.StatusFound.Title())
	assert.Equal(t, "Not In Directory", resolve.StatusNotInDirectory.Title())
}

func TestResultJSONShape(t *testing.T) {
	found, err := json.Marshal(resolve.Result{Status: resolve.StatusFound, AccountID: "alice.j"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"found","accountId":"alice.j"}`, string(found))

	missing, err := json.Marshal(resolve.Result{Status: resolve.StatusMissing})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"missing"}`, string(missing))

	ambiguous, err := json.Marshal(resolve.Result{
		Status:     resolve.StatusAmbiguous,
		Candidates: []string{"a", "b"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ambiguous","candidates":["a","b"]}`, string(ambiguous))
}
