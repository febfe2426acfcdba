package docdex

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// EPARSE and ETIMEOUT are per-file conditions: a rebuild records them and
// moves on. EDUPLICATE and ESYNC mean the index can no longer be trusted
// and abort the current rebuild or query. ESTALE signals that the index
// should be rebuilt, not that data is corrupt.
const (
	EDUPLICATE  = "duplicate"     // duplicate relative path within one rebuild
	EINTERNAL   = "internal"      // unexpected internal error
	EINVALID    = "invalid"       // validation failed
	ENOTFOUND   = "not_found"     // collection or entity does not exist
	EOUTOFRANGE = "out_of_range"  // index number beyond the collection
	EPARSE      = "parse"         // file could not be read or decoded
	ESTALE      = "stale_range"   // recorded line range no longer fits the file
	ESYNC       = "sync_mismatch" // index.jsonl and sections.jsonl diverge
	ETIMEOUT    = "timeout"       // summarizer call exceeded its budget
)

// Error represents an application error. Errors carry a machine-readable
// code and a human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("docdex error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}
