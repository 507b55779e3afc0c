// Package service implements the blog's data access and business rules on top of the shared gorm connection.
package service

import (
	"errors"
	"fmt"

	"github.com/mhsanaei/blog/database"
	"github.com/mhsanaei/blog/database/model"
	"github.com/mhsanaei/blog/logger"
	"github.com/mhsanaei/blog/util/crypto"
	"github.com/mhsanaei/blog/web/entity"
)

var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrEmailNotFound   = errors.New("email not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrPasswordTooLong = errors.New("password longer than 72 bytes")
)

type UserService struct{}

func (s *UserService) GetUserById(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByEmail(email string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", email).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrEmailNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates a new account. The first account ever created becomes the admin.
func (s *UserService) Register(form entity.RegisterForm) (*model.User, error) {
	if len(form.Password) > crypto.MaxPasswordLength {
		return nil, ErrPasswordTooLong
	}
	_, err := s.GetUserByEmail(form.Email)
	if err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrEmailNotFound) {
		return nil, err
	}

	hashedPassword, err := crypto.HashPasswordAsBcrypt(form.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    form.Email,
		Password: hashedPassword,
		Name:     form.Name,
	}
	err = database.GetDB().Create(user).Error
	if database.IsDuplicate(err) {
		return nil, ErrEmailTaken
	} else if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// CheckUser returns the user owning email when password matches its stored hash.
func (s *UserService) CheckUser(email string, password string) (*model.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		if !errors.Is(err, ErrEmailNotFound) {
			logger.Warning("check user err:", err)
		}
		return nil, err
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil, ErrInvalidPassword
	}
	return user, nil
}

func (s *UserService) GetAdmin() (*model.User, error) {
	return s.GetUserById(model.AdminUserId)
}

// UpdateAdminPassword replaces the admin's password hash.
func (s *UserService) UpdateAdminPassword(password string) error {
	if password == "" {
		return errors.New("password can not be empty")
	}
	if len(password) > crypto.MaxPasswordLength {
		return ErrPasswordTooLong
	}
	if _, err := s.GetAdmin(); err != nil {
		return err
	}
	hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}
	return database.GetDB().Model(model.User{}).
		Where("id = ?", model.AdminUserId).
		Update("password", hashedPassword).
		Error
}
