package resolve_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncdesk/accountmap/pkg/errors"
	"github.com/syncdesk/accountmap/pkg/overrides"
	"github.com/syncdesk/accountmap/pkg/resolve"
)

// concurrentDirectory is a fakeDirectory safe for parallel tasks, tracking
// the peak number of simultaneous queries.
type concurrentDirectory struct {
	mu      sync.Mutex
	records map[string][]resolve.DirectoryRecord
	errFor  map[string]error

	active atomic.Int32
	peak   atomic.Int32
}

func (d *concurrentDirectory) Query(_ context.Context, criteria string, _, _ []string) ([]resolve.DirectoryRecord, error) {
	current := d.active.Add(1)
	defer d.active.Add(-1)
	for {
		peak := d.peak.Load()
		if current <= peak || d.peak.CompareAndSwap(peak, current) {
			break
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.errFor[criteria]; err != nil {
		return nil, err
	}
	return d.records[criteria], nil
}

func newBatch(dir resolve.DirectorySearcher, search resolve.AccountSearcher, m overrides.Map) *resolve.Batch {
	engine := resolve.NewEngine(dir, search, testFields(), "corp.com").WithOverrides(m)
	return resolve.NewBatch(engine)
}

func TestResolveAllCollapsesDuplicatesAndDropsEmpty(t *testing.T) {
	dir := &concurrentDirectory{records: map[string][]resolve.DirectoryRecord{}}
	batch := newBatch(dir, &fakeSearcher{}, overrides.Map{"alice": "alice.j"})

	results, err := batch.ResolveAll(context.Background(),
		[]string{"alice", "", "ghost", "alice", "ghost", ""})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, resolve.Result{Status: resolve.StatusFound, AccountID: "alice.j"}, results["alice"])
	assert.Equal(t, resolve.Result{Status: resolve.StatusNotInDirectory}, results["ghost"])
}

func TestResolveAllBoundsConcurrency(t *testing.T) {
	dir := &concurrentDirectory{records: map[string][]resolve.DirectoryRecord{}}
	batch := newBatch(dir, &fakeSearcher{}, nil).WithMaxConcurrency(2)

	usernames := []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7", "u8"}
	results, err := batch.ResolveAll(context.Background(), usernames)
	require.NoError(t, err)

	assert.Len(t, results, len(usernames))
	assert.LessOrEqual(t, dir.peak.Load(), int32(2), "worker pool exceeded bound")
}

func TestResolveAllIsolatesFailures(t *testing.T) {
	dir := &concurrentDirectory{
		records: map[string][]resolve.DirectoryRecord{},
		errFor: map[string]error{
			"broken": &errors.DirectoryError{Operation: "search", Message: "down"},
		},
	}
	batch := newBatch(dir, &fakeSearcher{}, overrides.Map{"alice": "alice.j"})

	results, err := batch.ResolveAll(context.Background(), []string{"alice", "broken", "ghost"})
	require.Error(t, err)

	var resolveErr *errors.ResolveError
	require.ErrorAs(t, err, &resolveErr)
	assert.Equal(t, "broken", resolveErr.Username)

	// The failing task contributes no entry; the others still resolve.
	require.Len(t, results, 2)
	assert.Equal(t, resolve.StatusFound, results["alice"].Status)
	assert.Equal(t, resolve.StatusNotInDirectory, results["ghost"].Status)
}

func TestResolveAllIsIdempotent(t *testing.T) {
	records := map[string][]resolve.DirectoryRecord{
		"bob": {bobRecord()},
	}
	searchResults := map[string][]resolve.Candidate{
		"bob": {
			{AccountID: "bsmith1", DisplayName: "Bob Smith", Email: "one@corp.com"},
			{AccountID: "bsmith2", DisplayName: "Bob Smith", Email: "two@corp.com"},
		},
	}
	usernames := []string{"alice", "bob", "ghost"}

	run := func() resolve.BatchResult {
		dir := &concurrentDirectory{records: records}
		batch := newBatch(dir, &fakeSearcher{results: searchResults}, overrides.Map{"alice": "alice.j"})
		results, err := batch.ResolveAll(context.Background(), usernames)
		require.NoError(t, err)
		return results
	}

	assert.Equal(t, run(), run())
}
