package service

import (
	"context"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"

	"github.com/diagnosis/hbnb-listings/internal/domain"
	"github.com/diagnosis/hbnb-listings/pkg/events"
	"github.com/diagnosis/hbnb-listings/pkg/logger"
)

// CreateUser registers a new user. Only an admin caller may create
// another admin. The returned representation never carries the password.
func (f *Facade) CreateUser(ctx context.Context, req *domain.CreateUserRequest, actingAsAdmin bool) (*domain.UserInfo, error) {
	req.Normalize()
	if req.IsAdmin && !actingAsAdmin {
		return nil, domain.Permissionf("only admins can create admin users")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := f.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.Internalf(err, "failed to check existing user")
	}
	if existing != nil {
		return nil, domain.Conflictf("email already registered")
	}

	hash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, domain.Internalf(err, "failed to hash password")
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		IsAdmin:      req.IsAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := f.users.Create(ctx, user); err != nil {
		return nil, domain.Internalf(err, "failed to create user")
	}

	event := events.UserRegisteredEvent{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
	if err := f.eventBus.Publish(ctx, events.UserRegistered, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish user registered event", "error", err, "user_id", user.ID)
	}

	if err := f.mailer.SendWelcome(user.Email, user.FirstName); err != nil {
		// Registration succeeds even when the welcome email does not.
		logger.WarnContext(ctx, "Failed to send welcome email", "error", err, "user_id", user.ID)
	}

	return user.ToUserInfo(), nil
}

func (f *Facade) GetUser(ctx context.Context, id string) (*domain.UserInfo, error) {
	user, err := f.users.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internalf(err, "failed to get user")
	}
	if user == nil {
		return nil, domain.NotFoundf("user not found")
	}
	return user.ToUserInfo(), nil
}

func (f *Facade) GetUserByEmail(ctx context.Context, email string) (*domain.UserInfo, error) {
	user, err := f.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.Internalf(err, "failed to get user")
	}
	if user == nil {
		return nil, domain.NotFoundf("user not found")
	}
	return user.ToUserInfo(), nil
}

func (f *Facade) ListUsers(ctx context.Context, limit, offset int) ([]domain.UserInfo, error) {
	users, err := f.users.List(ctx, limit, offset)
	if err != nil {
		return nil, domain.Internalf(err, "failed to list users")
	}
	infos := make([]domain.UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, *users[i].ToUserInfo())
	}
	return infos, nil
}

// UpdateUser applies a partial update. Email and password changes are
// admin-only; other callers get a permission error before any field is
// validated or applied.
func (f *Facade) UpdateUser(ctx context.Context, id string, req *domain.UpdateUserRequest, actingAsAdmin bool) (*domain.UserInfo, error) {
	user, err := f.users.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internalf(err, "failed to get user")
	}
	if user == nil {
		return nil, domain.NotFoundf("user not found")
	}

	if req.TouchesCredentials() && !actingAsAdmin {
		return nil, domain.Permissionf("only admins can modify email or password")
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		existing, err := f.users.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, domain.Internalf(err, "failed to check existing user")
		}
		if existing != nil {
			return nil, domain.Conflictf("email already registered")
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Password != nil {
		hash, err := argon2id.CreateHash(*req.Password, argon2id.DefaultParams)
		if err != nil {
			return nil, domain.Internalf(err, "failed to hash password")
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	if err := f.users.Update(ctx, user); err != nil {
		return nil, domain.Internalf(err, "failed to update user")
	}
	return user.ToUserInfo(), nil
}

// DeleteUser removes a user. The requester must be the user themselves
// or an admin. The last remaining admin can never be deleted, and a user
// who still owns places must dispose of them first; their authored
// reviews are cascaded.
func (f *Facade) DeleteUser(ctx context.Context, id string, requester domain.Actor) error {
	user, err := f.users.FindByID(ctx, id)
	if err != nil {
		return domain.Internalf(err, "failed to get user")
	}
	if user == nil {
		return domain.NotFoundf("user not found")
	}

	if !requester.CanManage(user.ID) {
		return domain.Permissionf("not allowed to delete this user")
	}

	if user.IsAdmin {
		admins, err := f.users.CountAdmins(ctx)
		if err != nil {
			return domain.Internalf(err, "failed to count admins")
		}
		if admins <= 1 {
			return domain.Validationf("cannot delete the last admin")
		}
	}

	owned, err := f.places.CountByOwner(ctx, user.ID)
	if err != nil {
		return domain.Internalf(err, "failed to count owned places")
	}
	if owned > 0 {
		return domain.Validationf("cannot delete a user who still owns places")
	}

	if _, err := f.reviews.DeleteByUser(ctx, user.ID); err != nil {
		return domain.Internalf(err, "failed to delete user reviews")
	}
	ok, err := f.users.Delete(ctx, user.ID)
	if err != nil {
		return domain.Internalf(err, "failed to delete user")
	}
	if !ok {
		return domain.NotFoundf("user not found")
	}

	event := events.UserDeletedEvent{
		UserID:    user.ID,
		DeletedBy: requester.ID,
		DeletedAt: time.Now().UTC(),
	}
	if err := f.eventBus.Publish(ctx, events.UserDeleted, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish user deleted event", "error", err, "user_id", user.ID)
	}
	return nil
}

// Authenticate checks email/password credentials and returns the user.
// Token issuance stays with the HTTP layer.
func (f *Facade) Authenticate(ctx context.Context, req *domain.LoginRequest) (*domain.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := f.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.Internalf(err, "failed to find user")
	}
	if user == nil {
		return nil, domain.Permissionf("invalid credentials")
	}

	valid, err := argon2id.ComparePasswordAndHash(req.Password, user.PasswordHash)
	if err != nil {
		return nil, domain.Internalf(err, "failed to verify password")
	}
	if !valid {
		return nil, domain.Permissionf("invalid credentials")
	}
	return user, nil
}
