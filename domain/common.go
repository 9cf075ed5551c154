package domain

import (
	"errors"
	"fmt"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageFailedGetToken       = "failed to get token"

	// ErrValidation and ErrNotFound are the families every specific error
	// below belongs to.
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")

	ErrParseUUID     = fmt.Errorf("%w: failed to parse UUID", ErrValidation)
	ErrTokenNotFound = errors.New("failed to token not found")
	ErrTokenInvalid  = errors.New("token invalid")
	ErrTokenExpired  = errors.New("token expired")
)

// DateLayout is the wire format of every calendar date in requests and responses.
const DateLayout = "2006-01-02"
