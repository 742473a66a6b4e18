package usecase

import (
	"errors"
	"fmt"

	"sport-booking/internal/data/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrInvalidToken       = errors.New("invalid token format")

	ErrEmailTaken    = fmt.Errorf("email %w", repository.ErrDuplicate)
	ErrUsernameTaken = fmt.Errorf("username %w", repository.ErrDuplicate)
)
