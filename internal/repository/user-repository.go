package repository

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/nguyenchibao12/job-backend/internal/common"
	"github.com/nguyenchibao12/job-backend/internal/domain"
	"github.com/nguyenchibao12/job-backend/internal/helper"
)

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	FindUserByEmail(email string) (*domain.User, error)
	FindUserById(userID uint) (*domain.User, error)
	FindUserByResetTokenHash(hash string) (*domain.User, error)
	SaveUser(user *domain.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, common.Validation("nil user")
	}

	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || helper.IsDuplicateKey(err, "") {
			return nil, common.Conflict("email already exists")
		}
		log.Printf("create user error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to create user", err)
	}

	return user, nil
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFound("user not found")
		}
		log.Printf("find user by email error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to find user by email", err)
	}

	return user, nil
}

func (r *userRepository) FindUserById(userID uint) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.First(user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFound("user not found")
		}
		log.Printf("find user by id error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to find user by ID", err)
	}

	return user, nil
}

func (r *userRepository) FindUserByResetTokenHash(hash string) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.Where("reset_token_hash = ?", hash).First(user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFound("user not found")
		}
		log.Printf("find user by reset token error: %v", err)
		return nil, common.NewError(common.CodeInternal, "failed to find user by reset token", err)
	}

	return user, nil
}

func (r *userRepository) SaveUser(user *domain.User) error {
	if user == nil {
		return common.Validation("nil user")
	}

	if err := r.db.Save(user).Error; err != nil {
		log.Printf("save user error: %v", err)
		return common.NewError(common.CodeInternal, "failed to save user", err)
	}
	return nil
}
