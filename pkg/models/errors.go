package models

import "errors"

var (
	// ErrPhraseNotFound is returned when a phrase ID is absent from the store.
	ErrPhraseNotFound = errors.New("phrase not found")
	// ErrCategoryNotFound is returned when a category ID is absent from the store.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrTagNotFound is returned when a tag ID is absent from the store.
	ErrTagNotFound = errors.New("tag not found")
	// ErrInvalidDifficulty is returned when a review difficulty falls outside [0,1].
	ErrInvalidDifficulty = errors.New("difficulty must be between 0 and 1")
	// ErrInvalidInterval is returned when an interval is not in the interval table.
	ErrInvalidInterval = errors.New("unknown review interval")
	// ErrMissingText is returned when a phrase is missing its English or Japanese text.
	ErrMissingText = errors.New("phrase requires english and japanese text")
)
