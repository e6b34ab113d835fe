package auth

import (
	"errors"
	"fmt"
	"isp-billing/internal/pkg/apperrors"
)

var (
	ErrInvalidEmail  = fmt.Errorf("%w: invalid email address", apperrors.ErrInvalidArgument)
	ErrUserDisabled  = fmt.Errorf("%w: user disabled", apperrors.ErrForbidden)
	ErrUserNotFound  = fmt.Errorf("%w: user not found", apperrors.ErrUnauthorized)
	ErrWrongPassword = fmt.Errorf("%w: wrong password", apperrors.ErrUnauthorized)
)

const genericLoginMessage = "Login failed. Please check your credentials."

// LoginMessage turns a SignIn error into the text shown on the login form.
func LoginMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidEmail):
		return "Invalid email address."
	case errors.Is(err, ErrUserDisabled):
		return "This account has been disabled."
	case errors.Is(err, ErrUserNotFound):
		return "No account found with this email."
	case errors.Is(err, ErrWrongPassword):
		return "Incorrect password."
	default:
		return genericLoginMessage
	}
}
