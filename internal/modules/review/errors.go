package review

import "errors"

var (
	ErrFieldNotFound   = errors.New("field not found")
	ErrValidation      = errors.New("invalid review")
	ErrAlreadyReviewed = errors.New("user already reviewed this field")
)
