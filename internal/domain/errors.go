package domain

import "errors"

// ErrNotFound is returned when the requested resource (for example a
// dashboard session) does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when caller input is malformed (for example a
// season value that is not an integer).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDataset is returned by loaders when a dataset is missing required
// columns or holds values of the wrong type. It is fatal at startup.
var ErrDataset = errors.New("malformed dataset")
