package apperr

import "errors"

var (
	// ErrAlreadyImported marks a file whose checksum appears in the import
	// journal; callers decide whether to force or skip.
	ErrAlreadyImported = errors.New("file already imported")
)
