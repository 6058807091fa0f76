package user

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
