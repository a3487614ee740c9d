package resolve

import (
	"context"
	"errors"
	"sync"

	pkgerrors "github.com/syncdesk/accountmap/pkg/errors"
	"github.com/syncdesk/accountmap/pkg/logging"
)

// Batch runs the resolution engine concurrently over a list of user names.
//
// Each user name resolves in its own task with its own accumulators; the only
// shared state is the read-only engine configuration and override map, so no
// locking is needed. A failing task is isolated: it contributes no result
// entry and its error is joined into the error returned by ResolveAll.
type Batch struct {
	engine         *Engine
	maxConcurrency int
}

// NewBatch creates a batch coordinator around the given engine.
func NewBatch(engine *Engine) *Batch {
	return &Batch{engine: engine}
}

// WithMaxConcurrency bounds the number of simultaneously running resolution
// tasks. Zero or negative means unbounded.
func (b *Batch) WithMaxConcurrency(n int) *Batch {
	b.maxConcurrency = n
	return b
}

// verdict carries one task's outcome back to the collector.
type verdict struct {
	username string
	result   Result
	err      error
}

// ResolveAll resolves every distinct non-empty user name in the input
// concurrently and aggregates the verdicts. Duplicate and empty user names
// are dropped before dispatch, so each output key is produced by exactly one
// task. Results are collected as tasks complete; per-task failures are
// returned joined, alongside the partial results.
func (b *Batch) ResolveAll(ctx context.Context, usernames []string) (BatchResult, error) {
	distinct := distinctNames(usernames)

	logging.FromContext(ctx).Info().
		Int("usernames", len(distinct)).
		Msg("Resolving user names")

	resultChan := make(chan verdict, len(distinct))
	var sem chan struct{}
	if b.maxConcurrency > 0 {
		sem = make(chan struct{}, b.maxConcurrency)
	}

	var wg sync.WaitGroup
	for _, username := range distinct {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			result, err := b.engine.Resolve(ctx, name)
			if err != nil {
				resultChan <- verdict{username: name, err: pkgerrors.WrapResolve(name, err)}
				return
			}
			resultChan <- verdict{username: name, result: result}
		}(username)
	}

	wg.Wait()
	close(resultChan)

	results := make(BatchResult, len(distinct))
	var errs []error
	for v := range resultChan {
		if v.err != nil {
			errs = append(errs, v.err)
			continue
		}
		results[v.username] = v.result
	}

	return results, errors.Join(errs...)
}

// distinctNames drops empty user names and collapses duplicates, keeping
// first-occurrence order.
func distinctNames(usernames []string) []string {
	seen := make(map[string]bool, len(usernames))
	distinct := make([]string, 0, len(usernames))
	for _, name := range usernames {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		distinct = append(distinct, name)
	}
	return distinct
}
