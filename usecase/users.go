package usecase

import (
	"context"
	"errors"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrEmailTaken    = errors.New("Email already registered")
	ErrUsernameTaken = errors.New("Username already registered")
)

// UserStore is the slice of the users repository the service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	UpdateAPIKey(ctx context.Context, id primitive.ObjectID, apiKey string) (*model.User, error)
}

type UserService struct {
	UsersRepo UserStore
}

// Register creates a user with a freshly generated credential. Both
// identity fields are checked in a single lookup; when both collide the
// email message wins.
func (svc *UserService) Register(ctx context.Context, username, email string) (*model.User, error) {
	existing, err := svc.UsersRepo.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Email == email {
			return nil, ErrEmailTaken
		}
		return nil, ErrUsernameTaken
	}

	user := &model.User{
		Username: username,
		Email:    email,
		APIKey:   utils.GenerateAPIKey(""),
	}

	if err := svc.UsersRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// RegenerateAPIKey replaces the credential; the old key is dead the
// moment the write lands. There is no rotation grace period.
func (svc *UserService) RegenerateAPIKey(ctx context.Context, userID primitive.ObjectID) (*model.User, error) {
	return svc.UsersRepo.UpdateAPIKey(ctx, userID, utils.GenerateAPIKey(""))
}
