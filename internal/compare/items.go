package compare

import (
	"sort"

	"kanadex/internal/domain"
)

// SortItems orders items in place by the shared sort preference. An
// unknown field leaves the list order untouched rather than failing, so
// a stale sort key from persisted state degrades gracefully.
func SortItems(items []*domain.Item, spec domain.SortSpec) {
	cmp := itemComparator(spec.Field)
	if cmp == nil {
		return
	}
	desc := spec.Direction == "desc"
	sort.SliceStable(items, func(i, j int) bool {
		c := cmp(items[i], items[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func itemComparator(field string) func(a, b *domain.Item) int {
	switch field {
	case "productionDate":
		return func(a, b *domain.Item) int { return Dates(a.ProductionDate, b.ProductionDate) }
	case "id":
		return func(a, b *domain.Item) int { return Natural(a.ID(), b.ID()) }
	case "code":
		return func(a, b *domain.Item) int { return Natural(a.CodeText(), b.CodeText()) }
	case "location":
		return func(a, b *domain.Item) int { return Natural(a.LocationText(), b.LocationText()) }
	case "company":
		return func(a, b *domain.Item) int { return Locale(a.StorageCompanyText(), b.StorageCompanyText()) }
	case "size":
		return func(a, b *domain.Item) int { return Locale(a.DimensionsText(), b.DimensionsText()) }
	}
	return nil
}

// KnownSortField reports whether the shared sort vocabulary contains the field
func KnownSortField(field string) bool {
	return itemComparator(field) != nil
}
