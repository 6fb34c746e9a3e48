package notebook

import "errors"

// Error kinds surfaced by the notebook core. Callers match them with errors.Is;
// the text doubles as the code printed to the user.
var (
	ErrNotFound        = errors.New("NB_NOT_FOUND")
	ErrInvalidArgument = errors.New("NB_INVALID_ARGUMENT")
	ErrConflict        = errors.New("NB_CONFLICT")
	ErrIO              = errors.New("NB_IO")
	ErrCorrupt         = errors.New("NB_CORRUPT_STATE")
)
