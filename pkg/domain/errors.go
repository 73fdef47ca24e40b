package domain

import (
	"errors"
	"fmt"
)

// sentinel errors used across layers
var (
	ErrNotFound     = errors.New("not found")
	ErrEmptyAnswers = errors.New("conversation answers are empty")
	ErrInvalidUser  = errors.New("invalid user id")
)

// NormalizationError is returned when answers can't be turned into a preference vector
type NormalizationError struct {
	Err error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalize preferences: %v", e.Err)
}

func (e *NormalizationError) Unwrap() error { return e.Err }

// SelectionError is returned when the model can't pick recipes from a pool
type SelectionError struct {
	Err error
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("select recipes: %v", e.Err)
}

func (e *SelectionError) Unwrap() error { return e.Err }
