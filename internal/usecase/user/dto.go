package user

// DefaultItemsPerPage is the page size used when a list request does not set one.
const DefaultItemsPerPage = 10

// MaxItemsPerPage caps the page size of a list request.
const MaxItemsPerPage = 100

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64 `json:"id"`
}

// FindUsersRequest filters users by substrings of their names.
// At least one of the two fields must be set.
type FindUsersRequest struct {
	GivenNames string `json:"givenNames,omitempty"`
	LastName   string `json:"lastName,omitempty"`
}

// ListUsersRequest represents the request payload for listing users one page at a time.
type ListUsersRequest struct {
	PageNumber   int `json:"pageNumber"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	GivenNames   string `json:"givenNames"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	MobileNumber string `json:"mobileNumber"`
}

// UpdateUserRequest represents the request payload for replacing an existing user.
type UpdateUserRequest struct {
	ID           int64  `json:"id"`
	GivenNames   string `json:"givenNames"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	MobileNumber string `json:"mobileNumber"`
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64 `json:"id"`
}

// UserDto is the read projection of a user and its contact detail.
// EmailAddress and MobileNumber are nil when the user has no contact detail.
type UserDto struct {
	UserID       int64   `json:"userId"`
	GivenNames   string  `json:"givenNames"`
	LastName     string  `json:"lastName"`
	EmailAddress *string `json:"emailAddress,omitempty"`
	MobileNumber *string `json:"mobileNumber,omitempty"`
	FullName     string  `json:"fullName"`
}

// String returns the user's full name.
func (d UserDto) String() string {
	return d.FullName
}

// PaginatedUsers is one page of users.
type PaginatedUsers struct {
	Data        []UserDto `json:"data"`
	HasNextPage bool      `json:"hasNextPage"`
}
