package group

import (
	"cmp"
	"slices"
	"strings"

	"github.com/vietddude/backupreport/internal/core/domain"
)

// Sort orders records by organization then method, ascending.
// Equal keys keep their input order. The input slice is not modified.
func Sort(records []domain.BackupRecord) []domain.BackupRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b domain.BackupRecord) int {
		return cmp.Or(
			strings.Compare(a.CompanyName, b.CompanyName),
			strings.Compare(a.MethodName, b.MethodName),
		)
	})
	return sorted
}

// ByOrganization groups records by organization name in first-seen order.
func ByOrganization(records []domain.BackupRecord) []domain.OrganizationGroup {
	var groups []domain.OrganizationGroup
	index := make(map[string]int)

	for _, r := range records {
		i, ok := index[r.CompanyName]
		if !ok {
			i = len(groups)
			index[r.CompanyName] = i
			groups = append(groups, domain.OrganizationGroup{Organization: r.CompanyName})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// SortAndGroup is Sort followed by ByOrganization.
func SortAndGroup(records []domain.BackupRecord) []domain.OrganizationGroup {
	return ByOrganization(Sort(records))
}
