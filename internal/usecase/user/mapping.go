package user

import domain "user-contact-service/internal/domain/user"

func toDto(u *domain.User) *UserDto {
	dto := &UserDto{
		UserID:     u.ID,
		GivenNames: u.GivenNames,
		LastName:   u.LastName,
		FullName:   u.FullName(),
	}
	if u.ContactDetail != nil {
		email := u.ContactDetail.EmailAddress
		mobile := u.ContactDetail.MobileNumber
		dto.EmailAddress = &email
		dto.MobileNumber = &mobile
	}
	return dto
}

func toDtos(users []domain.User) []UserDto {
	dtos := make([]UserDto, len(users))
	for i := range users {
		dtos[i] = *toDto(&users[i])
	}
	return dtos
}
