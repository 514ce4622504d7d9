package Models

import "fmt"

// ValidationError is raised before any request is issued.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RequestFailure is a transport error, a non-2xx response, or a control
// endpoint answering anything but {"status":"ok"}.
type RequestFailure struct {
	Endpoint string
	Status   int
	Reply    string
	Err      error
}

func (e *RequestFailure) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("request %s failed: %v", e.Endpoint, e.Err)
	case e.Reply != "":
		return fmt.Sprintf("request %s answered status %q", e.Endpoint, e.Reply)
	default:
		return fmt.Sprintf("request %s returned HTTP %d", e.Endpoint, e.Status)
	}
}

func (e *RequestFailure) Unwrap() error { return e.Err }

// DecodeFailure is a payload that could not be decoded into its model.
type DecodeFailure struct {
	Endpoint string
	Err      error
}

func (e *DecodeFailure) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeFailure) Unwrap() error { return e.Err }
