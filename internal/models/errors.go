package models

import "fmt"

// ExtractionError means the uploaded bytes could not be turned into text:
// either the declared type is unsupported or the format reader rejected
// the stream.
type ExtractionError struct {
	Kind   string
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed for %s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction failed for %s: %s", e.Kind, e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ServiceError is a transport-level failure from an external collaborator
// (model provider, vector store).
type ServiceError struct {
	Service string
	Err     error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service error: %v", e.Service, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// ResponseParseError means the model returned something that is not JSON.
type ResponseParseError struct {
	Raw string
}

func (e *ResponseParseError) Error() string {
	preview := e.Raw
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	return fmt.Sprintf("model response is not valid JSON: %q", preview)
}

// SchemaValidationError means the model returned JSON but required keys
// are absent.
type SchemaValidationError struct {
	Missing []string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("model response missing required keys: %v", e.Missing)
}

// DataIntegrityError means a stored row failed to decode on read. It is
// scoped to the row; queries around it keep working.
type DataIntegrityError struct {
	Table string
	RowID uint
	Field string
	Err   error
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("corrupt %s field on %s row %d: %v", e.Field, e.Table, e.RowID, e.Err)
}

func (e *DataIntegrityError) Unwrap() error { return e.Err }
