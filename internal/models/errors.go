package models

import "errors"

// Application-wide standard errors
var (
	// Common Resource/DB Errors
	ErrNotFound = errors.New("resource not found") // General not found (also covers not-owned resources)

	// Account & Authentication Errors
	ErrAccountNotFound = errors.New("account not found")
	ErrUnauthorized    = errors.New("unauthorized") // Authentication required or failed
	ErrForbidden       = errors.New("forbidden")    // Authenticated, but lacks permission

	// Token Errors
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// Character Errors
	ErrCharacterNameTaken = errors.New("character with this name already exists on this server")

	// Selection Errors
	ErrNoActiveCharacter = errors.New("no active character selected")
	ErrServerMismatch    = errors.New("selected server does not match the active character")

	// General Request/Server Errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
	ErrInvalidInput   = errors.New("invalid input data")
)
