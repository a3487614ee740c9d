package resolve

import (
	"context"
	"strings"

	"github.com/syncdesk/accountmap/pkg/logging"
)

// Scorer compares directory records against ticket account candidates.
// Scoring is pure: the only side effect is logging.
type Scorer struct {
	fields Fields
	domain string // organization email domain, no leading @
}

// NewScorer creates a scorer for the given field configuration and
// organization email domain. A leading @ on the domain is stripped.
func NewScorer(fields Fields, emailDomain string) *Scorer {
	return &Scorer{
		fields: fields,
		domain: strings.TrimLeft(emailDomain, "@"),
	}
}

// Score compares one directory record against one candidate account.
//
// Accounts outside the organization email domain never match. A full match
// requires the candidate email to appear among the record's mail fields or
// the account id among its username fields. Overlap between the candidate's
// id or display name and the record's name fields is a partial match.
func (s *Scorer) Score(ctx context.Context, record DirectoryRecord, candidate Candidate) Score {
	log := logging.FromContext(ctx)

	if candidate.AccountID == "" || candidate.DisplayName == "" || candidate.Email == "" {
		log.Warn().
			Str("account_id", candidate.AccountID).
			Msg("Unable to get ticket account values")
		return NoMatch
	}

	log.Debug().
		Str("display_name", candidate.DisplayName).
		Str("account_id", candidate.AccountID).
		Str("email", candidate.Email).
		Msg("Trying ticket account")

	if strings.HasSuffix(candidate.Email, "@"+s.domain) {
		emails := record.valueSet(s.fields.Mail)
		usernames := record.valueSet(s.fields.Username)

		if emails[candidate.Email] || usernames[candidate.AccountID] {
			log.Debug().Msg("Match")
			return Match
		}

		names := record.valueSet(s.fields.Name)
		if names[candidate.AccountID] || names[candidate.DisplayName] {
			log.Debug().Msg("Partial Match")
			return PartialMatch
		}
	}

	log.Debug().Msg("No Match")
	return NoMatch
}
