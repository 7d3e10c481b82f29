package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 10, Offset(2, 10))
	assert.Equal(t, 40, Offset(3, 20))
	assert.Equal(t, 0, Offset(0, 10))
}

func TestNewPage_HasNextPage(t *testing.T) {
	tests := []struct {
		name     string
		returned int
		page     int
		perPage  int
		total    int64
		want     bool
	}{
		{name: "first full page of 13", returned: 10, page: 1, perPage: 10, total: 13, want: true},
		{name: "last partial page of 13", returned: 3, page: 2, perPage: 10, total: 13, want: false},
		{name: "exact multiple last page", returned: 10, page: 1, perPage: 10, total: 10, want: false},
		{name: "middle page", returned: 10, page: 2, perPage: 10, total: 30, want: true},
		{name: "full middle page of 13 by 5", returned: 5, page: 2, perPage: 5, total: 13, want: true},
		{name: "partial last page of 13 by 5", returned: 3, page: 3, perPage: 5, total: 13, want: false},
		{name: "empty page", returned: 0, page: 5, perPage: 10, total: 13, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(make([]User, tt.returned), tt.page, tt.perPage, tt.total)
			assert.Equal(t, tt.want, p.HasNextPage)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}

func TestUser_FullName(t *testing.T) {
	u := User{GivenNames: "Laura", LastName: "Bailey"}
	assert.Equal(t, "Laura Bailey", u.FullName())
}
