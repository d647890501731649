package domain

import "errors"

var (
	// ErrNoFile is returned when an upload carries no file or an empty one.
	ErrNoFile = errors.New("no file selected")
	// ErrEmptyPool indicates the uploaded file produced no questions.
	ErrEmptyPool = errors.New("no questions found in file")
	// ErrUnsupportedFormat is returned for file extensions the parser cannot read.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrInvalidCredentials is returned when a login does not match a known user.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned when a request has no valid login session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSessionNotFound is returned when a login session id is unknown or expired.
	ErrSessionNotFound = errors.New("session not found")
	// ErrUserExists is returned when adding a user name that is already taken.
	ErrUserExists = errors.New("user already exists")
)

// UploadError is a failed upload with the detail the endpoint reported, if any.
type UploadError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *UploadError) Error() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "upload failed"
	}
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
