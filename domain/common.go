package domain

import (
	"errors"
)

const (
	RoleUser = "user"
	//ROLE_ADMIN = "admin"
)

var (
	MessageFailedBodyRequest  = "failed to parse body request"
	MessageFailedGetToken     = "failed to get token"
	MessageFailedTokenInvalid = "failed to token invalid"

	ErrParseUUID     = errors.New("failed to parse UUID")
	ErrTokenNotFound = errors.New("failed to token not found")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")
)
