package models

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is an account that owns ledger entries and budgets.
type User struct {
	DefaultModel
	Username string `gorm:"uniqueIndex"`
	Password string `json:"-"` // bcrypt hash, never the plain password
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Username = strings.TrimSpace(u.Username)
	return nil
}

// SetPassword hashes the plain password onto the user. Passwords shorter
// than 8 or longer than 72 bytes are rejected before hashing.
func (u *User) SetPassword(plain string) error {
	if len(plain) < 8 || len(plain) > 72 {
		return ErrPasswordInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether the plain password matches the stored hash.
func (u User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// CreateUser registers a new user with a hashed password.
func CreateUser(db *gorm.DB, username, password string) (User, error) {
	user := User{Username: username}

	err := user.SetPassword(password)
	if err != nil {
		return User{}, err
	}

	err = db.Create(&user).Error
	if err != nil {
		return User{}, err
	}

	return user, nil
}

// FindUserByUsername returns the user with the username.
func FindUserByUsername(db *gorm.DB, username string) (User, error) {
	var user User
	err := db.Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if err != nil {
		return User{}, err
	}

	return user, nil
}
