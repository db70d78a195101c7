package identify

import (
	"errors"
	"fmt"
)

// FailureKind tags the failure stage of an identification attempt so
// callers can branch on the kind rather than on message content.
type FailureKind string

const (
	// KindEncode covers failures reading or decoding the input image.
	KindEncode FailureKind = "encode"
	// KindTransport covers network and API failures during the model call.
	KindTransport FailureKind = "transport"
	// KindParse covers malformed JSON in the model response.
	KindParse FailureKind = "parse"
	// KindValidation covers schema-valid responses missing required fields.
	KindValidation FailureKind = "validation"
	// KindUnknown covers anything else.
	KindUnknown FailureKind = "unknown"
)

// Error is the single failure type surfaced by the identify service.
// Exactly one Error is produced per failed attempt.
type Error struct {
	Kind FailureKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("identification failed (%s)", e.Kind)
	}
	return fmt.Sprintf("identification failed (%s): %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind of err, or KindUnknown for untagged errors.
func KindOf(err error) FailureKind {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return KindUnknown
}
