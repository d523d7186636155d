package apperrors

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrUnknownScene       = errors.New("unknown sound scene")
	ErrZeroDuration       = errors.New("please select a meditation duration first")
	ErrNoMicrophone       = errors.New("microphone access is not supported")
	ErrMicrophoneDenied   = errors.New("could not access microphone, check permissions")
	ErrBackendUnavailable = errors.New("backend unavailable")
)
