package reward

import "errors"

var (
	ErrInvalidStatus   = errors.New("invalid reward status")
	ErrStorageDisabled = errors.New("icon storage is not configured")
	ErrInvalidIcon     = errors.New("invalid icon image")
)
