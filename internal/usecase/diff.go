package usecase

import "github.com/iho/ledgersync/internal/domain"

// Diff returns the candidates not yet present in existing, in their original order.
// Activities only found in existing are ignored.
func Diff(existing, candidates []domain.Activity) []domain.Activity {
	matcher := NewIdentityMatcher(existing)

	diff := make([]domain.Activity, 0, len(candidates))
	for _, c := range candidates {
		if !matcher.IsPresent(c) {
			diff = append(diff, c)
		}
	}
	return diff
}
