package user

import (
	"context"

	"go.uber.org/zap"

	domain "user-contact-service/internal/domain/user"
	"user-contact-service/internal/mediator"
	"user-contact-service/internal/validation"
	apperrors "user-contact-service/pkg/errors"
	"user-contact-service/pkg/logger"
)

// Repository defines the interface for user data access operations.
// Lookups report an absent user as (nil, nil).
type Repository interface {
	Get(ctx context.Context, id int64) (*domain.User, error)                      // Retrieve user and contact detail by ID
	Find(ctx context.Context, givenNames, lastName string) ([]domain.User, error) // Users whose names contain the given substrings
	ListPage(ctx context.Context, pageNumber, perPage int) ([]domain.User, error) // One page of users ordered by ID
	Add(ctx context.Context, u *domain.User) (*domain.User, error)                // Insert user and contact detail, assigning the ID
	Update(ctx context.Context, u *domain.User) (*domain.User, error)             // Replace user and contact detail
	Delete(ctx context.Context, id int64) (*domain.User, error)                   // Remove user and contact detail, returning what was removed
	Count(ctx context.Context) (int64, error)                                     // Number of users
}

// UserService implements Usecase. Every call is dispatched through a mediator so
// the validation and logging behaviors run before any handler.
type UserService struct {
	repo     Repository
	log      *zap.Logger
	mediator *mediator.Mediator
}

// New creates a new UserService over the provided repository.
func New(r Repository, log *zap.Logger) *UserService {
	rules := validation.NewRegistry()
	RegisterRules(rules)

	s := &UserService{repo: r, log: log}
	s.mediator = mediator.New(log,
		mediator.LoggingBehavior(log),
		rules.Behavior(log),
	)

	mediator.MustRegister(s.mediator, s.getUser)
	mediator.MustRegister(s.mediator, s.findUsers)
	mediator.MustRegister(s.mediator, s.listUsers)
	mediator.MustRegister(s.mediator, s.createUser)
	mediator.MustRegister(s.mediator, s.updateUser)
	mediator.MustRegister(s.mediator, s.deleteUser)

	return s
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, in GetUserRequest) (*UserDto, error) {
	return mediator.Send[GetUserRequest, *UserDto](ctx, s.mediator, in)
}

// FindUsers returns every user matching the supplied name filters. No match is not an error.
func (s *UserService) FindUsers(ctx context.Context, in FindUsersRequest) ([]UserDto, error) {
	return mediator.Send[FindUsersRequest, []UserDto](ctx, s.mediator, in)
}

// ListUsers returns one page of users.
func (s *UserService) ListUsers(ctx context.Context, in ListUsersRequest) (*PaginatedUsers, error) {
	return mediator.Send[ListUsersRequest, *PaginatedUsers](ctx, s.mediator, in)
}

// CreateUser creates a new user with its contact detail.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserRequest) (*UserDto, error) {
	return mediator.Send[CreateUserRequest, *UserDto](ctx, s.mediator, in)
}

// UpdateUser replaces the names and contact detail of an existing user.
func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserRequest) (*UserDto, error) {
	return mediator.Send[UpdateUserRequest, *UserDto](ctx, s.mediator, in)
}

// DeleteUser removes a user and returns the record as it was before deletion.
func (s *UserService) DeleteUser(ctx context.Context, in DeleteUserRequest) (*UserDto, error) {
	return mediator.Send[DeleteUserRequest, *UserDto](ctx, s.mediator, in)
}

func (s *UserService) getUser(ctx context.Context, in GetUserRequest) (*UserDto, error) {
	u, err := s.repo.Get(ctx, in.ID)
	if err != nil {
		logger.WithContext(ctx, s.log).Error("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	if u == nil {
		return nil, apperrors.UserNotFound(in.ID)
	}
	return toDto(u), nil
}

// blankAsEmpty returns "" for a whitespace-only filter, which validation
// already treats as absent.
func blankAsEmpty(s string) string {
	if validation.IsBlank(s) {
		return ""
	}
	return s
}

func (s *UserService) findUsers(ctx context.Context, in FindUsersRequest) ([]UserDto, error) {
	users, err := s.repo.Find(ctx, blankAsEmpty(in.GivenNames), blankAsEmpty(in.LastName))
	if err != nil {
		logger.WithContext(ctx, s.log).Error("failed to find users",
			zap.String("given_names", in.GivenNames),
			zap.String("last_name", in.LastName),
			zap.Error(err),
		)
		return nil, apperrors.NewInternalError("failed to find users", err)
	}
	return toDtos(users), nil
}

func (s *UserService) listUsers(ctx context.Context, in ListUsersRequest) (*PaginatedUsers, error) {
	perPage := in.ItemsPerPage
	if perPage <= 0 {
		perPage = DefaultItemsPerPage
	}
	if perPage > MaxItemsPerPage {
		perPage = MaxItemsPerPage
	}

	users, err := s.repo.ListPage(ctx, in.PageNumber, perPage)
	if err != nil {
		logger.WithContext(ctx, s.log).Error("failed to list users",
			zap.Int("page_number", in.PageNumber),
			zap.Int("items_per_page", perPage),
			zap.Error(err),
		)
		return nil, apperrors.NewInternalError("failed to list users", err)
	}
	if len(users) == 0 {
		return nil, apperrors.NewNotFoundError("user", "No users found.")
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		logger.WithContext(ctx, s.log).Error("failed to count users", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to count users", err)
	}

	page := domain.NewPage(users, in.PageNumber, perPage, total)
	return &PaginatedUsers{
		Data:        toDtos(page.Users),
		HasNextPage: page.HasNextPage,
	}, nil
}

func (s *UserService) createUser(ctx context.Context, in CreateUserRequest) (*UserDto, error) {
	created, err := s.repo.Add(ctx, &domain.User{
		GivenNames: in.GivenNames,
		LastName:   in.LastName,
		ContactDetail: &domain.ContactDetail{
			EmailAddress: in.EmailAddress,
			MobileNumber: in.MobileNumber,
		},
	})
	if err != nil {
		logger.WithContext(ctx, s.log).Error("failed to create user", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to create user", err)
	}

	logger.WithContext(ctx, s.log).Info("user created", zap.Int64("id", created.ID))
	return toDto(created), nil
}

func (s *UserService) updateUser(ctx context.Context, in UpdateUserRequest) (*UserDto, error) {
	existing, err := s.repo.Get(ctx, in.ID)
	if err != nil {
		logger.WithContext(ctx, s.log).Error("failed to load user for update", zap.Int64("id", in.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to load user for update", err)
	}
	if existing == nil {
		return nil, apperrors.UserNotFound(in.ID)
	}

	existing.GivenNames = in.GivenNames
	existing.LastName = in.LastName
	existing.ContactDetail = &domain.ContactDetail{
		EmailAddress: in.EmailAddress,
		MobileNumber: in.MobileNumber,
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		logger.WithContext(ctx, s.log).Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to update user", err)
	}
	// Removed between the lookup and the write.
	if updated == nil {
		return nil, apperrors.UserNotFound(in.ID)
	}

	return toDto(updated), nil
}

func (s *UserService) deleteUser(ctx context.Context, in DeleteUserRequest) (*UserDto, error) {
	existing, err := s.repo.Get(ctx, in.ID)
	if err != nil {
		logger.WithContext(ctx, s.log).Error("failed to load user for delete", zap.Int64("id", in.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to load user for delete", err)
	}
	if existing == nil {
		return nil, apperrors.UserNotFound(in.ID)
	}

	deleted, err := s.repo.Delete(ctx, in.ID)
	if err != nil {
		logger.WithContext(ctx, s.log).Error("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to delete user", err)
	}
	if deleted == nil {
		return nil, apperrors.UserNotFound(in.ID)
	}

	return toDto(deleted), nil
}
