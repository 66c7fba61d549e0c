// Package repair turns raw model output into a schema-valid tailored resume. It cleans and
// parses the text, coerces near-miss shapes, decides on retries and reconstructs a fallback
// when every attempt fails.
package repair

import (
	"fmt"
	"strings"
)

// ParseError reports cleaned text that is still not decodable JSON
type ParseError struct {
	Message string
	Offset  int64
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error at offset %d: %s: %v", e.Offset, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// SchemaError reports a decoded document that violates the tailored-resume schema
type SchemaError struct {
	Fields []string
	Cause  error
}

func (e *SchemaError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("schema error: %v", e.Cause)
	}
	return fmt.Sprintf("schema error in %s: %v", strings.Join(e.Fields, ", "), e.Cause)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// CoercionError reports a document that could not be coerced into a valid shape
type CoercionError struct {
	Message string
	Cause   error
}

func (e *CoercionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("coercion error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("coercion error: %s", e.Message)
}

func (e *CoercionError) Unwrap() error {
	return e.Cause
}

// GenerateError reports a failure of the generator itself
type GenerateError struct {
	Attempt int
	Cause   error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("generation failed on attempt %d: %v", e.Attempt, e.Cause)
}

func (e *GenerateError) Unwrap() error {
	return e.Cause
}

// ExhaustedError is returned when no attempt produced a valid document
type ExhaustedError struct {
	Attempts []Attempt
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no valid response after %d attempts: %v", len(e.Attempts), e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}
