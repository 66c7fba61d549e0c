package repair

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/jonathan/resume-guard/internal/schemas"
	"github.com/jonathan/resume-guard/internal/types"
)

// State is a step of the response-coercion state machine
type State string

// Pipeline states
const (
	StateRawReceived    State = "RAW_RECEIVED"
	StateCleaned        State = "CLEANED"
	StateParsed         State = "PARSED"
	StateSchemaValid    State = "SCHEMA_VALID"
	StateSchemaInvalid  State = "SCHEMA_INVALID"
	StateCoerced        State = "COERCED"
	StateCoercionFailed State = "COERCION_FAILED"
	StateRetry          State = "RETRY"
	StateExhausted      State = "EXHAUSTED"
	StateFallback       State = "FALLBACK"
)

// Attempt records one pass of the pipeline over a raw response
type Attempt struct {
	ID          uuid.UUID `json:"id"`
	Number      int       `json:"number"`
	State       State     `json:"state"`
	Transitions []State   `json:"transitions"`
	Raw         string    `json:"raw"`
	Cleaned     string    `json:"cleaned,omitempty"`
	Coerced     string    `json:"coerced,omitempty"`
	Errors      []string  `json:"errors"`
	Steps       []string  `json:"steps"`
}

func newAttempt(raw string, number int) Attempt {
	a := Attempt{
		ID:     uuid.New(),
		Number: number,
		Raw:    raw,
		Errors: []string{},
		Steps:  []string{},
	}
	a.enter(StateRawReceived)
	return a
}

func (a *Attempt) enter(s State) {
	a.State = s
	a.Transitions = append(a.Transitions, s)
}

// fail records err on the attempt. Schema violations are recorded one "field: message" entry
// per violation.
func (a *Attempt) fail(err error) error {
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) && len(validationErr.Errors) > 0 {
		for _, fe := range validationErr.Errors {
			a.Errors = append(a.Errors, fe.Field+": "+fe.Message)
		}
		return err
	}
	a.Errors = append(a.Errors, err.Error())
	return err
}

// ParseAndValidate runs one attempt over raw model output. On success the resume has
// Confidence 1. Failures return a *ParseError, a *SchemaError wrapped in a *CoercionError, or a
// *CoercionError, and the attempt records the state reached.
func ParseAndValidate(raw string, number int) (types.TailoredResume, Attempt, error) {
	attempt := newAttempt(raw, number)

	attempt.Cleaned = Clean(raw)
	attempt.enter(StateCleaned)

	value, err := DecodeValue(attempt.Cleaned)
	if err != nil {
		return types.TailoredResume{}, attempt, attempt.fail(err)
	}
	attempt.enter(StateParsed)

	schemaErr := validateSchema(attempt.Cleaned)
	if schemaErr == nil {
		var resume types.TailoredResume
		if err := json.Unmarshal([]byte(attempt.Cleaned), &resume); err != nil {
			return types.TailoredResume{}, attempt, attempt.fail(&ParseError{Message: "decode into tailored resume", Cause: err})
		}
		attempt.enter(StateSchemaValid)
		resume.Confidence = 1
		return resume, attempt, nil
	}
	attempt.enter(StateSchemaInvalid)
	_ = attempt.fail(schemaErr)

	resume, steps, err := Coerce(value)
	attempt.Steps = append(attempt.Steps, steps...)
	if err != nil {
		attempt.enter(StateCoercionFailed)
		return types.TailoredResume{}, attempt, attempt.fail(err)
	}

	coerced, err := json.Marshal(resume)
	if err != nil {
		attempt.enter(StateCoercionFailed)
		return types.TailoredResume{}, attempt, attempt.fail(&CoercionError{Message: "encode coerced document", Cause: err})
	}
	attempt.Coerced = string(coerced)
	attempt.enter(StateCoerced)

	if err := validateSchema(attempt.Coerced); err != nil {
		attempt.enter(StateCoercionFailed)
		return types.TailoredResume{}, attempt, attempt.fail(&CoercionError{Message: "coerced document still violates schema", Cause: err})
	}

	attempt.enter(StateSchemaValid)
	resume.Confidence = 1
	return resume, attempt, nil
}

// validateSchema returns nil or a *SchemaError
func validateSchema(doc string) error {
	err := schemas.ValidateTailored(doc)
	if err == nil {
		return nil
	}
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		return &SchemaError{Fields: validationErr.Fields(), Cause: err}
	}
	return &SchemaError{Cause: err}
}
