package models

import (
	"errors"
	"strings"
	"time"
)

// User holds the point balance spent on orders. Version increments on every
// balance write and is the optimistic-lock token presented on deduction.
type User struct {
	UserID       string    `json:"user_id"`
	UserName     string    `json:"user_name"`
	Point        int64     `json:"point"`
	Version      int64     `json:"-"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.UserID) == "" {
		return errors.New("user id required")
	}
	if u.UserName == "" {
		u.UserName = u.UserID
	}
	if u.Point < 0 {
		return errors.New("initial point must be >= 0")
	}
	return nil
}
