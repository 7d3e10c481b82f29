package user

// Page is one slice of an ordered listing.
type Page struct {
	Users       []User
	PageNumber  int
	PerPage     int
	Total       int64
	HasNextPage bool
}

// Offset returns the number of records that precede the given page.
func Offset(pageNumber, perPage int) int {
	if pageNumber < 1 {
		return 0
	}
	return (pageNumber - 1) * perPage
}

// NewPage builds a Page and works out whether records exist beyond it.
// total is the number of records in the whole listing.
//
// HasNextPage compares against total rather than testing whether the page is
// full (pageNumber*perPage == len(users)). The full-page test reports a next
// page after the last page of an exact multiple, and reports none on every
// full page after the first (13 users, 5 per page: page 2 has a successor).
func NewPage(users []User, pageNumber, perPage int, total int64) *Page {
	seen := int64(Offset(pageNumber, perPage) + len(users))

	return &Page{
		Users:       users,
		PageNumber:  pageNumber,
		PerPage:     perPage,
		Total:       total,
		HasNextPage: len(users) > 0 && seen < total,
	}
}
