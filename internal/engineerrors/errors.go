package engineerrors

import "fmt"

// EngineError is the single sum-type error surfaced across every stage of the
// fingerprint/match pipeline. Callers discriminate on Code, not on Go type.
type EngineError struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *EngineError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the HTTP status an API layer should report for this error.
func (e *EngineError) StatusCode() int {
	return e.Code.StatusCode()
}

func New(code Code, message string) *EngineError {
	return &EngineError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *EngineError {
	return &EngineError{Code: code, Message: message, Cause: cause}
}

func ShortSignal(gotSamples, minSamples int) *EngineError {
	return New(InputTooShort, fmt.Sprintf("signal has %d samples, need at least %d", gotSamples, minSamples))
}

func LongSignal(gotSamples, maxSamples int) *EngineError {
	return New(InputTooLong, fmt.Sprintf("signal has %d samples, exceeds max %d", gotSamples, maxSamples))
}

func BadFormat(reason string) *EngineError {
	return New(InvalidAudioFormat, reason)
}

func EmptyQueryFingerprint() *EngineError {
	return New(EmptyQuery, "fingerprint contains zero hashes")
}

func VersionMismatch(indexVersion, queryVersion uint16) *EngineError {
	return New(IndexVersionMismatch, fmt.Sprintf("index built with quantization version %d, query used %d", indexVersion, queryVersion))
}

func NoMatchFound() *EngineError {
	return New(NoMatch, "no candidate met the recognition threshold")
}

func DeadlineExceeded(stage string) *EngineError {
	return New(Deadline, fmt.Sprintf("deadline exceeded at stage %q", stage))
}

func Unavailable(collaborator string, cause error) *EngineError {
	return Wrap(ExternalUnavailable, fmt.Sprintf("%s unavailable", collaborator), cause)
}

func InvariantViolated(what string) *EngineError {
	return New(InternalInvariantViolated, what)
}
