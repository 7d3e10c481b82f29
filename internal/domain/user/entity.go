package user

// User represents a user entity in the system.
type User struct {
	ID            int64          // ID is assigned by the store on creation and never changes
	GivenNames    string         // GivenNames holds the user's first and middle names
	LastName      string         // LastName is the user's family name
	ContactDetail *ContactDetail // ContactDetail is owned by the user and removed with it
}

// ContactDetail holds the ways a user can be reached.
// Either field may be empty.
type ContactDetail struct {
	EmailAddress string
	MobileNumber string
}

// FullName returns "{GivenNames} {LastName}".
func (u *User) FullName() string {
	return u.GivenNames + " " + u.LastName
}
