package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrMultipleJSON    = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: please specify a payload with -i or pipe JSON data to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")

	// ErrUnsupportedPayload is returned when the payload is not a JSON object.
	ErrUnsupportedPayload = errors.New("unsupported json: payload must be an object with string keys")
	// ErrMissingMeta is returned when the naming configuration is absent or incomplete.
	ErrMissingMeta = errors.New("missing naming configuration: name and namespace are required")
	// ErrElementNotObject is returned when the first element of a list of
	// containers is itself a non-empty list, which has no field names.
	ErrElementNotObject = errors.New("first list element is not an object")
	// ErrMaxDepth is returned when the payload nests deeper than allowed.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")
	// ErrTypeNameCollision is returned in strict mode when two types share a name.
	ErrTypeNameCollision = errors.New("type name collision")
	// ErrUnknownTarget is returned for an unregistered output target.
	ErrUnknownTarget = errors.New("unknown output target")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput       ErrorType = "input"
	ErrorTypeParsing     ErrorType = "parsing"
	ErrorTypeConfig      ErrorType = "config"
	ErrorTypeUnsupported ErrorType = "unsupported"
	ErrorTypeAnalysis    ErrorType = "analysis"
	ErrorTypeGenerate    ErrorType = "generate"
	ErrorTypeFormat      ErrorType = "format"
	ErrorTypeOutput      ErrorType = "output"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func newError(t ErrorType, message string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: message,
		Err:     err,
	}
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return newError(ErrorTypeInput, message, err)
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(message string, err error) *AppError {
	return newError(ErrorTypeParsing, message, err)
}

// NewConfigError creates a new error related to configuration loading
func NewConfigError(message string, err error) *AppError {
	return newError(ErrorTypeConfig, message, err)
}

// NewUnsupportedError creates a new error for a payload whose shape cannot be inferred
func NewUnsupportedError(message string, err error) *AppError {
	return newError(ErrorTypeUnsupported, message, err)
}

// NewAnalysisError creates a new error related to schema inference
func NewAnalysisError(message string, err error) *AppError {
	return newError(ErrorTypeAnalysis, message, err)
}

// NewGenerateError creates a new error related to code generation
func NewGenerateError(message string, err error) *AppError {
	return newError(ErrorTypeGenerate, message, err)
}

// NewFormatError creates a new error related to code formatting
func NewFormatError(message string, err error) *AppError {
	return newError(ErrorTypeFormat, message, err)
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return newError(ErrorTypeOutput, message, err)
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeUnsupported:
			return "Unsupported json!"
		case ErrorTypeAnalysis:
			return fmt.Sprintf("Type analysis error: %s", appErr.Message)
		case ErrorTypeGenerate:
			return fmt.Sprintf("Code generation error: %s", appErr.Message)
		case ErrorTypeFormat:
			return fmt.Sprintf("Code formatting error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	switch {
	case errors.Is(err, ErrEmptyInput):
		return "Error: The input is empty. Please provide valid JSON data."
	case errors.Is(err, ErrInvalidJSON):
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	case errors.Is(err, ErrMultipleJSON):
		return "Error: Multiple JSON values found. Please provide a single JSON object."
	case errors.Is(err, ErrFileNotFound):
		return "Error: The specified file could not be found. Please check the file path."
	case errors.Is(err, ErrFileEmpty):
		return "Error: The specified file is empty. Please provide a file with valid JSON content."
	case errors.Is(err, ErrNoInput):
		return "Error: No input provided. Please specify a payload with -i or pipe JSON data to stdin."
	case errors.Is(err, ErrInvalidFilePath):
		return "Error: Invalid file path. Please provide a valid file path."
	case errors.Is(err, ErrUnsupportedPayload):
		return "Unsupported json!"
	case errors.Is(err, ErrMissingMeta):
		return "Error: Please provide meta settings with a name and a namespace and try again."
	}

	return fmt.Sprintf("Error: %v", err)
}
