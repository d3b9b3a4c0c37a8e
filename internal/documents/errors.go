package documents

import "errors"

var (
	// ErrNotFound covers both a missing document and one owned by another
	// user; callers cannot tell the two apart.
	ErrNotFound = errors.New("document not found")

	ErrInvalidInput        = errors.New("invalid input")
	ErrUnsupportedFileType = errors.New("only JPEG and PNG files are allowed")
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
)
