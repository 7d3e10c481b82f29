package gormstore

import domain "user-contact-service/internal/domain/user"

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID            int64                `gorm:"primaryKey;autoIncrement"`                                       // Assigned on insert
	GivenNames    string               `gorm:"not null"`                                                       // User's given names (required)
	LastName      string               `gorm:"not null;index"`                                                 // User's last name (required)
	ContactDetail *ContactDetailSchema `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"` // Owned contact detail
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// ContactDetailSchema represents the database schema for the contact_details table.
type ContactDetailSchema struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	EmailAddress string `gorm:"not null;default:''"`
	MobileNumber string `gorm:"not null;default:''"`
	UserID       int64  `gorm:"not null;uniqueIndex"`
}

// TableName specifies the table name for the ContactDetailSchema model.
func (ContactDetailSchema) TableName() string {
	return "contact_details"
}

// Models lists every schema for migration.
func Models() []any {
	return []any{&UserSchema{}, &ContactDetailSchema{}}
}

func toDomain(m *UserSchema) *domain.User {
	u := &domain.User{
		ID:         m.ID,
		GivenNames: m.GivenNames,
		LastName:   m.LastName,
	}
	if m.ContactDetail != nil {
		u.ContactDetail = &domain.ContactDetail{
			EmailAddress: m.ContactDetail.EmailAddress,
			MobileNumber: m.ContactDetail.MobileNumber,
		}
	}
	return u
}

func toDomainList(models []UserSchema) []domain.User {
	users := make([]domain.User, len(models))
	for i := range models {
		users[i] = *toDomain(&models[i])
	}
	return users
}
