package repository

import (
	"context"

	"sttock-tracker/internal/entity"
	"sttock-tracker/internal/tracker/config"
	"sttock-tracker/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// NewStaticUserRepository creates a credential store backed by an
// in-memory user list from configuration, the mock-database variant.
// Passwords are hashed at startup so the authentication path is identical
// to the hosted variant. Sign-up is not supported.
func NewStaticUserRepository(users []config.StaticUser, emailDomain string) (UserRepository, error) {
	repo := &staticUserRepository{}
	for i, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		repo.users = append(repo.users, entity.User{
			ID:            uint(i + 1),
			Email:         utils.SynthesizeEmail(u.Username, emailDomain),
			Username:      u.Username,
			Password:      string(hash),
			EmailVerified: true,
		})
	}
	return repo, nil
}

type staticUserRepository struct {
	users []entity.User
}

func (r *staticUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *staticUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			u := user
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *staticUserRepository) Create(ctx context.Context, user *entity.User) error {
	return ErrSignUpUnsupported
}

func (r *staticUserRepository) MarkVerified(ctx context.Context, id uint) error {
	return nil
}
