package field

import "errors"

var (
	ErrNotFound           = errors.New("field not found")
	ErrValidation         = errors.New("validation error")
	ErrOutOfBusinessHours = errors.New("window outside business hours")
	ErrOverlapConflict    = errors.New("special hours overlap")
)
