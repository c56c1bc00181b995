package assistant

import "errors"

var (
	// ErrSymptomsRequired means the request carried no symptom text.
	ErrSymptomsRequired = errors.New("symptoms are required")
	// ErrUnsupportedLanguage means the requested answer language is unknown.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrInvalidImage means the attached image could not be decoded.
	ErrInvalidImage = errors.New("invalid image attachment")
)
