package services

import "errors"

var (
	// ErrValidation wraps every rule a request body can break.
	ErrValidation = errors.New("validation error")
	// ErrNoFieldsToUpdate is returned for a patch that names no updatable field.
	ErrNoFieldsToUpdate = errors.New("no valid fields")
)

const dateLayout = "2006-01-02"
