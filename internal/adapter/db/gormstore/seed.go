package gormstore

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedUsers is the data loaded into an empty store.
var SeedUsers = []UserSchema{
	{ID: 1, GivenNames: "Laura", LastName: "Bailey"},
	{ID: 2, GivenNames: "Travis", LastName: "Willingham"},
	{ID: 3, GivenNames: "Brian", LastName: "Foster"},
	{ID: 4, GivenNames: "Matthew", LastName: "Mercer"},
	{ID: 5, GivenNames: "Marisha", LastName: "Ray"},
	{ID: 6, GivenNames: "Liam", LastName: "O'Brian"},
	{ID: 7, GivenNames: "Taliesin", LastName: "Jaffe"},
	{ID: 8, GivenNames: "Ashley", LastName: "Johnson"},
	{ID: 9, GivenNames: "Sam", LastName: "Riegel"},
	{ID: 10, GivenNames: "John", LastName: "Smith"},
	{ID: 11, GivenNames: "Jane", LastName: "Smith"},
	{ID: 12, GivenNames: "Linus", LastName: "Sebastian"},
	{ID: 13, GivenNames: "Will", LastName: "Friedle"},
}

// SeedContactDetails belong to users in SeedUsers.
var SeedContactDetails = []ContactDetailSchema{
	{ID: 1, EmailAddress: "john.smith@example.com", MobileNumber: "0411112222", UserID: 10},
	{ID: 2, EmailAddress: "jane.smith@example.com", MobileNumber: "0422223333", UserID: 11},
}

// Migrate creates or updates the users and contact_details tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Seed loads SeedUsers and SeedContactDetails when the users table is empty.
func Seed(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	var n int64
	if err := db.WithContext(ctx).Model(&UserSchema{}).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if n > 0 {
		log.Debug("store already populated, skipping seed", zap.Int64("users", n))
		return nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := make([]UserSchema, len(SeedUsers))
		copy(users, SeedUsers)
		if err := tx.Create(&users).Error; err != nil {
			return err
		}

		contacts := make([]ContactDetailSchema, len(SeedContactDetails))
		copy(contacts, SeedContactDetails)
		if err := tx.Create(&contacts).Error; err != nil {
			return err
		}

		// Explicit IDs do not advance postgres sequences.
		if tx.Dialector.Name() == "postgres" {
			for _, table := range []string{"users", "contact_details"} {
				stmt := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))", table, table)
				if err := tx.Exec(stmt).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	log.Info("seeded user store", zap.Int("users", len(SeedUsers)), zap.Int("contact_details", len(SeedContactDetails)))
	return nil
}
