package accounts

import "fmt"

// ValidationError is a precondition failure on caller input. It is reported
// to the caller and never sent over the network.
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

// ErrNoCriteria is returned when all four criteria are empty or absent.
var ErrNoCriteria = &ValidationError{
	Message: "no search criteria provided: at least one of names, phones, CPFs or emails is required",
}

// RemoteError is a non-2xx answer from the search endpoint. Body is the raw
// response text, untranslated.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("API Error (%d): %s", e.Status, e.Body)
}

// TransportError is a failure before or during the remote call: the request
// could not be sent, the body could not be read, or it was not a JSON array.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "transport error"
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }
