package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidRole             = errors.New("invalid role")
	ErrManagerNotFound         = errors.New("manager not found")
	ErrRoleMismatch            = errors.New("user does not hold the requested role")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
