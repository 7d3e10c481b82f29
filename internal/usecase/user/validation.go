package user

import "user-contact-service/internal/validation"

// Field names as they appear in failure messages.
const (
	fieldID           = "Id"
	fieldGivenNames   = "Given Names"
	fieldLastName     = "Last Name"
	fieldEmailAddress = "Email Address"
	fieldMobileNumber = "Mobile Number"
	fieldPageNumber   = "Page Number"
)

// RegisterRules adds the rule set of every user request to reg.
func RegisterRules(reg *validation.Registry) {
	validation.Register(reg, validateGetUser)
	validation.Register(reg, validateFindUsers)
	validation.Register(reg, validateListUsers)
	validation.Register(reg, validateCreateUser)
	validation.Register(reg, validateUpdateUser)
	validation.Register(reg, validateDeleteUser)
}

func validateGetUser(r GetUserRequest) []string {
	return validation.Collect(validation.GreaterThan(fieldID, r.ID, 0))
}

func validateDeleteUser(r DeleteUserRequest) []string {
	return validation.Collect(validation.GreaterThan(fieldID, r.ID, 0))
}

// Either name alone is enough; supplying neither fails both rules.
func validateFindUsers(r FindUsersRequest) []string {
	return validation.Collect(
		validation.When(validation.IsBlank(r.LastName), validation.NotEmpty(fieldGivenNames, r.GivenNames)),
		validation.When(validation.IsBlank(r.GivenNames), validation.NotEmpty(fieldLastName, r.LastName)),
	)
}

func validateListUsers(r ListUsersRequest) []string {
	return validation.Collect(validation.GreaterThan(fieldPageNumber, int64(r.PageNumber), 0))
}

func validateCreateUser(r CreateUserRequest) []string {
	return validation.Collect(
		validation.NotEmpty(fieldGivenNames, r.GivenNames),
		validation.NotEmpty(fieldLastName, r.LastName),
		validation.NotEmpty(fieldEmailAddress, r.EmailAddress),
		validation.NotEmpty(fieldMobileNumber, r.MobileNumber),
	)
}

func validateUpdateUser(r UpdateUserRequest) []string {
	return validation.Collect(
		validation.GreaterThan(fieldID, r.ID, 0),
		validation.NotEmpty(fieldGivenNames, r.GivenNames),
		validation.NotEmpty(fieldLastName, r.LastName),
		validation.NotEmpty(fieldEmailAddress, r.EmailAddress),
		validation.NotEmpty(fieldMobileNumber, r.MobileNumber),
	)
}
