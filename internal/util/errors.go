package util

import "errors"

var (
	ErrStateNotFound        = errors.New("state not found")
	ErrPreconditionMissing  = errors.New("required prior state is missing")
	ErrGenerationFailed     = errors.New("generation failed, please try again")
	ErrEmptyGeneration      = errors.New("generation service returned no result")
	ErrMalformedOutput      = errors.New("generation output does not match the declared shape")
	ErrIncompleteAssessment = errors.New("please answer all questions before submitting")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailRegistered      = errors.New("this email is already registered")
	ErrSessionExpired       = errors.New("session expired")
)
