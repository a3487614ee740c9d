package resolve

import (
	"context"
	"slices"

	"github.com/rs/zerolog"

	"github.com/syncdesk/accountmap/pkg/logging"
	"github.com/syncdesk/accountmap/pkg/overrides"
)

// DefaultMaxResults is the default ticket-search result cap per seed.
const DefaultMaxResults = 10

// Engine resolves a single directory user name to a ticketing account by
// composing the override map, the directory query, the ticket account search
// and the match scorer into one verdict.
type Engine struct {
	directory  DirectorySearcher
	accounts   AccountSearcher
	scorer     *Scorer
	fields     Fields
	overrides  overrides.Map
	maxResults int
}

// NewEngine creates a resolution engine. Adapters are injected
// already-constructed; the engine holds no connection state of its own.
func NewEngine(directory DirectorySearcher, accounts AccountSearcher, fields Fields, emailDomain string) *Engine {
	return &Engine{
		directory:  directory,
		accounts:   accounts,
		scorer:     NewScorer(fields, emailDomain),
		fields:     fields,
		overrides:  overrides.Map{},
		maxResults: DefaultMaxResults,
	}
}

// WithOverrides sets the override map consulted before any lookup.
func (e *Engine) WithOverrides(m overrides.Map) *Engine {
	if m != nil {
		e.overrides = m
	}
	return e
}

// WithMaxResults sets the ticket-search result cap per seed.
func (e *Engine) WithMaxResults(n int) *Engine {
	if n > 0 {
		e.maxResults = n
	}
	return e
}

// Resolve maps one user name to a ticketing account.
//
// The override map wins outright. Otherwise the directory is queried for
// exactly one record; its configured search fields seed ticket searches in
// order until a candidate fully matches. With no full match, a single partial
// match from a single-result search resolves the user; any other outcome with
// observed candidates is ambiguous.
func (e *Engine) Resolve(ctx context.Context, username string) (Result, error) {
	ctx = logging.WithUsername(ctx, username)
	log := logging.FromContext(ctx)

	log.Info().Msg("Process username")

	if accountID, ok := e.overrides[username]; ok {
		e.logResult(ctx, StatusFound, accountID, "override map")
		return Result{Status: StatusFound, AccountID: accountID}, nil
	}

	records, err := e.directory.Query(ctx, username, e.fields.Query, e.fields.ReturnFields())
	if err != nil {
		return Result{}, err
	}

	if len(records) == 0 {
		e.logResult(ctx, StatusNotInDirectory, username, "")
		return Result{Status: StatusNotInDirectory}, nil
	}
	if len(records) > 1 {
		// Shouldn't happen when the query field is unique-valued.
		log.Error().Int("records", len(records)).Msg("Multiple directory records for user name")
		e.logResult(ctx, StatusMissing, username, "ambiguous identity")
		return Result{Status: StatusMissing}, nil
	}
	record := records[0]

	resolved, seen, partialSingles, err := e.searchAccounts(ctx, record)
	if err != nil {
		return Result{}, err
	}

	switch {
	case len(seen) == 0:
		e.logResult(ctx, StatusMissing, username, "")
		return Result{Status: StatusMissing}, nil

	case resolved != "":
		e.logResult(ctx, StatusFound, resolved, "")
		return Result{Status: StatusFound, AccountID: resolved}, nil

	case len(partialSingles) == 1:
		e.logResult(ctx, StatusFound, partialSingles[0], "single partial")
		return Result{Status: StatusFound, AccountID: partialSingles[0]}, nil

	default:
		e.logResult(ctx, StatusAmbiguous, username, "")
		return Result{Status: StatusAmbiguous, Candidates: seen}, nil
	}
}

// searchAccounts runs the seed loop: each seed value searches the ticketing
// system and candidates are scored until one fully matches. It returns the
// resolved account id (empty if none), the seen account ids in first-observed
// order, and the partial matches collected from single-result searches.
func (e *Engine) searchAccounts(ctx context.Context, record DirectoryRecord) (string, []string, []string, error) {
	var (
		resolved       string
		seen           []string
		seenSet        = make(map[string]bool)
		partialSingles []string
	)

	for _, seed := range e.searchSeeds(ctx, record) {
		seedCtx := logging.WithSeed(ctx, seed)
		logging.FromContext(seedCtx).Info().Msg("Ticket search")

		candidates, err := e.accounts.Search(seedCtx, seed, e.maxResults)
		if err != nil {
			return "", nil, nil, err
		}
		singleResult := len(candidates) == 1

		for _, candidate := range candidates {
			// A single authoritative hit is always re-evaluated; noisy
			// multi-result searches don't re-score accounts already seen.
			if seenSet[candidate.AccountID] && !singleResult {
				continue
			}
			if !seenSet[candidate.AccountID] {
				seenSet[candidate.AccountID] = true
				seen = append(seen, candidate.AccountID)
			}

			switch e.scorer.Score(seedCtx, record, candidate) {
			case Match:
				resolved = candidate.AccountID
			case PartialMatch:
				if singleResult && !slices.Contains(partialSingles, candidate.AccountID) {
					partialSingles = append(partialSingles, candidate.AccountID)
				}
			}
			if resolved != "" {
				break
			}
		}

		// Don't search values from the remaining record fields.
		if resolved != "" {
			break
		}
	}

	return resolved, seen, partialSingles, nil
}

// searchSeeds returns the configured search field values in order, skipping
// absent fields and values already collected from an earlier field.
func (e *Engine) searchSeeds(ctx context.Context, record DirectoryRecord) []string {
	var seeds []string
	for _, field := range e.fields.Search {
		values := record[field]
		if len(values) == 0 {
			logging.FromContext(ctx).Debug().Str("field", field).Msg("Field not in directory record")
			continue
		}
		for _, v := range values {
			if v != "" && !slices.Contains(seeds, v) {
				seeds = append(seeds, v)
			}
		}
	}
	return seeds
}

// logResult logs the verdict for one user name. Found resolutions log at
// info, everything else at warn.
func (e *Engine) logResult(ctx context.Context, status Status, subject, note string) {
	log := logging.FromContext(ctx)

	var ev *zerolog.Event
	if status == StatusFound {
		ev = log.Info()
	} else {
		ev = log.Warn()
	}
	if note != "" {
		ev = ev.Str("note", note)
	}
	ev.Str("status", string(status)).Msgf("Ticket account - %s: %s", status.Title(), subject)
}
