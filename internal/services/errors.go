package services

import (
	"errors"

	"microblog/internal/repositories"
	"microblog/pkg/pagination"
)

var (
	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
	// ErrForbidden is returned when a user acts on a resource they do not own.
	ErrForbidden = errors.New("not allowed")
	// ErrInvalidCredentials is returned on failed login. It deliberately
	// does not reveal whether the email exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNameTaken is returned when registering with a name already in use.
	ErrNameTaken = errors.New("name already taken")
	// ErrInvalidContent is returned for a blank or over-length micropost.
	ErrInvalidContent = errors.New("content must be non-blank and at most 140 characters")

	// ErrNotFound and ErrInvalidPage propagate unchanged from the layers
	// that raise them; they are re-exported here so handlers only import
	// one error vocabulary.
	ErrNotFound    = repositories.ErrNotFound
	ErrInvalidPage = pagination.ErrInvalidPage
)
