package gormstore

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "user-contact-service/internal/domain/user"
)

// UserRepo implements the user Repository on top of GORM. It works with both
// the postgres and the sqlite dialects.
type UserRepo struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepo creates a new instance of UserRepo.
func NewUserRepo(db *gorm.DB, log *zap.Logger) *UserRepo {
	return &UserRepo{db: db, log: log}
}

// contains builds a case-sensitive substring predicate for column.
func (r *UserRepo) contains(column string) string {
	if r.db.Dialector.Name() == "postgres" {
		return fmt.Sprintf("strpos(%s, ?) > 0", column)
	}
	return fmt.Sprintf("instr(%s, ?) > 0", column)
}

// Get retrieves a user and its contact detail by ID. It returns nil when no such user exists.
func (r *UserRepo) Get(ctx context.Context, id int64) (*domain.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Preload("ContactDetail").First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found", zap.Int64("id", id))
			return nil, nil
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toDomain(&model), nil
}

// Find returns users whose given names and last name contain the supplied
// substrings. An empty filter is ignored; both filters must match when set.
func (r *UserRepo) Find(ctx context.Context, givenNames, lastName string) ([]domain.User, error) {
	query := r.db.WithContext(ctx).Preload("ContactDetail")
	if givenNames != "" {
		query = query.Where(r.contains("given_names"), givenNames)
	}
	if lastName != "" {
		query = query.Where(r.contains("last_name"), lastName)
	}

	var models []UserSchema
	if err := query.Order("id ASC").Find(&models).Error; err != nil {
		r.log.Error("failed to find users in db", zap.Error(err), zap.String("given_names", givenNames), zap.String("last_name", lastName))
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	return toDomainList(models), nil
}

// ListPage retrieves one page of users ordered by ID.
func (r *UserRepo) ListPage(ctx context.Context, pageNumber, perPage int) ([]domain.User, error) {
	var models []UserSchema
	err := r.db.WithContext(ctx).
		Preload("ContactDetail").
		Order("id ASC").
		Offset(domain.Offset(pageNumber, perPage)).
		Limit(perPage).
		Find(&models).Error
	if err != nil {
		r.log.Error("failed to list users from db", zap.Error(err), zap.Int("page_number", pageNumber), zap.Int("per_page", perPage))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return toDomainList(models), nil
}

// Add inserts a new user together with its contact detail.
func (r *UserRepo) Add(ctx context.Context, u *domain.User) (*domain.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	model := UserSchema{
		GivenNames: u.GivenNames,
		LastName:   u.LastName,
	}
	if u.ContactDetail != nil {
		model.ContactDetail = &ContactDetailSchema{
			EmailAddress: u.ContactDetail.EmailAddress,
			MobileNumber: u.ContactDetail.MobileNumber,
		}
	}

	// Create saves the has-one association inside the same transaction.
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create user in db", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return toDomain(&model), nil
}

// Update replaces the names and the contact detail of an existing user.
// It returns nil when the user does not exist.
func (r *UserRepo) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	if u == nil {
		return nil, errors.New("user cannot be nil")
	}

	var updated *UserSchema
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model UserSchema
		if err := tx.Preload("ContactDetail").First(&model, u.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := tx.Model(&UserSchema{ID: model.ID}).Updates(map[string]any{
			"given_names": u.GivenNames,
			"last_name":   u.LastName,
		}).Error; err != nil {
			return err
		}
		model.GivenNames = u.GivenNames
		model.LastName = u.LastName

		switch {
		case u.ContactDetail == nil && model.ContactDetail != nil:
			if err := tx.Delete(model.ContactDetail).Error; err != nil {
				return err
			}
			model.ContactDetail = nil
		case u.ContactDetail != nil:
			contact := ContactDetailSchema{UserID: model.ID}
			if model.ContactDetail != nil {
				contact.ID = model.ContactDetail.ID
			}
			contact.EmailAddress = u.ContactDetail.EmailAddress
			contact.MobileNumber = u.ContactDetail.MobileNumber
			if err := tx.Save(&contact).Error; err != nil {
				return err
			}
			model.ContactDetail = &contact
		}

		updated = &model
		return nil
	})
	if err != nil {
		r.log.Error("failed to update user in db", zap.Error(err), zap.Int64("id", u.ID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if updated == nil {
		r.log.Debug("user to update not found", zap.Int64("id", u.ID))
		return nil, nil
	}

	r.log.Info("user updated in db", zap.Int64("id", updated.ID))
	return toDomain(updated), nil
}

// Delete removes a user and its contact detail by ID and returns the removed
// record. It returns nil when the user does not exist.
func (r *UserRepo) Delete(ctx context.Context, id int64) (*domain.User, error) {
	var removed *UserSchema
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model UserSchema
		if err := tx.Preload("ContactDetail").First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&ContactDetailSchema{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&UserSchema{}, id).Error; err != nil {
			return err
		}

		removed = &model
		return nil
	})
	if err != nil {
		r.log.Error("failed to delete user in db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	if removed == nil {
		r.log.Debug("user to delete not found", zap.Int64("id", id))
		return nil, nil
	}

	r.log.Info("user deleted in db", zap.Int64("id", id))
	return toDomain(removed), nil
}

// Count returns the number of users.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&UserSchema{}).Count(&n).Error; err != nil {
		r.log.Error("failed to count users in db", zap.Error(err))
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
