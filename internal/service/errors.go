package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto
// response codes.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidPassword    = errors.New("current password is incorrect")
	ErrInvalidToken       = errors.New("invalid token")

	ErrTitleRequired     = errors.New("title is required")
	ErrHTMLRequired      = errors.New("html content is required")
	ErrThumbnailRequired = errors.New("thumbnail url is required")
	ErrSlugExists        = errors.New("a blog with this slug already exists")
	ErrInvalidPlacement  = errors.New("invalid placement value")
	ErrDeviceIDRequired  = errors.New("device id is required")

	ErrInvalidEmail    = errors.New("invalid email address")
	ErrMessageRequired = errors.New("message is required")
	ErrNameRequired    = errors.New("name is required")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")

	ErrEmailServiceDisabled      = errors.New("email service is disabled")
	ErrEmailServiceNotConfigured = errors.New("email service is not configured")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds the size limit")
	ErrImageTooLarge       = errors.New("image dimensions exceed the limit")
	ErrInvalidDocx         = errors.New("file is not a valid docx document")
)
