package customer

import (
	"slices"
	"strings"
)

const DefaultPageSize = 10

// Filter holds the list criteria. A zero field means "no filter" for that criterion.
type Filter struct {
	Search  string `json:"search"`
	Status  Status `json:"status"`
	Package string `json:"package"`
}

func (f Filter) IsZero() bool {
	return f == Filter{}
}

func (f Filter) matches(c Customer, search string) bool {
	if search != "" &&
		!strings.Contains(strings.ToLower(c.Name), search) &&
		!strings.Contains(strings.ToLower(c.Email), search) &&
		!strings.Contains(strings.ToLower(c.Phone), search) {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Package != "" && c.Package != f.Package {
		return false
	}
	return true
}

// ApplyFilters returns the records matching f, in their original order.
// records is never modified.
func ApplyFilters(records []Customer, f Filter) []Customer {
	search := strings.ToLower(f.Search)
	view := make([]Customer, 0, len(records))
	for _, c := range records {
		if f.matches(c, search) {
			view = append(view, c)
		}
	}
	return view
}

// Paginate returns the 1-based page of view. Pages outside the view are empty.
func Paginate(view []Customer, page, pageSize int) []Customer {
	if page < 1 || pageSize < 1 {
		return []Customer{}
	}
	start := (page - 1) * pageSize
	if start >= len(view) {
		return []Customer{}
	}
	end := min(start+pageSize, len(view))
	return view[start:end:end]
}

func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

func HasNext(page, pageCount int) bool {
	return page < pageCount
}

func HasPrev(page int) bool {
	return page > 1
}

// SortByConnectionDate orders records newest connection first. Equal dates
// keep their load order.
func SortByConnectionDate(records []Customer) {
	slices.SortStableFunc(records, func(a, b Customer) int {
		return b.ConnectionDate.Compare(a.ConnectionDate)
	})
}
