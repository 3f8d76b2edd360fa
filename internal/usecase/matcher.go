package usecase

import (
	"strings"

	"github.com/iho/ledgersync/internal/domain"
)

// activityProjection is the structural identity of an activity.
// Decimal fields use their canonical string so 1.50 and 1.5 compare equal.
type activityProjection struct {
	accountID string
	date      string
	fee       string
	quantity  string
	symbol    string
	typ       domain.ActivityType
	unitPrice string
}

func project(a domain.Activity) activityProjection {
	return activityProjection{
		accountID: a.AccountID,
		date:      a.DatePrefix(),
		fee:       a.Fee.String(),
		quantity:  a.Quantity.String(),
		symbol:    a.ResolvedSymbol(),
		typ:       a.Type,
		unitPrice: a.UnitPrice.String(),
	}
}

// IdentityMatcher answers whether a candidate activity is already in a ledger snapshot.
type IdentityMatcher struct {
	comments []string
	untagged map[activityProjection]struct{}
	all      map[activityProjection]struct{}
}

// NewIdentityMatcher indexes the ledger's existing activities.
func NewIdentityMatcher(existing []domain.Activity) *IdentityMatcher {
	m := &IdentityMatcher{
		comments: make([]string, 0, len(existing)),
		untagged: make(map[activityProjection]struct{}),
		all:      make(map[activityProjection]struct{}, len(existing)),
	}
	for _, a := range existing {
		p := project(a)
		m.all[p] = struct{}{}
		if a.Comment != "" {
			m.comments = append(m.comments, a.Comment)
		}
		// A tag further into the comment can never satisfy a tag match,
		// so such records stay eligible for structural matching.
		if !a.LeadsWithTag() {
			m.untagged[p] = struct{}{}
		}
	}
	return m
}

// IsPresent reports whether candidate matches an existing activity.
//
// A tagged candidate is present when an existing comment starts with its tag,
// or when it structurally equals an existing activity whose comment does not
// start with a tag (imported by hand or by an older tool). An existing
// activity that leads with a tag is only ever matched by its own tag, so two
// identical trades on the same day with distinct transaction ids stay distinct.
func (m *IdentityMatcher) IsPresent(candidate domain.Activity) bool {
	p := project(candidate)

	tag, ok := candidate.Tag()
	if !ok {
		_, found := m.all[p]
		return found
	}

	for _, c := range m.comments {
		if strings.HasPrefix(c, tag) {
			return true
		}
	}

	_, found := m.untagged[p]
	return found
}
