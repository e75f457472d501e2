// Package repositories holds errors shared by every repository.
package repositories

import "errors"

var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidInput = errors.New("invalid input")
)
