package accounts

import (
	"errors"
	"fmt"
)

// Outcome is the terminal state of one tool invocation. The set of outcomes is
// closed; Render handles each of them.
type Outcome interface {
	outcome()
}

// Rejected: input failed validation, nothing was sent.
type Rejected struct{ Err error }

// TransportFailure: the call failed before a usable response was obtained.
type TransportFailure struct{ Err error }

// HTTPFailure: the endpoint answered with a non-2xx status.
type HTTPFailure struct {
	Status int
	Body   string
}

// Empty: the endpoint answered with an empty array.
type Empty struct{}

// Success: the endpoint answered with at least one record.
type Success struct{ Records Records }

func (Rejected) outcome()         {}
func (TransportFailure) outcome() {}
func (HTTPFailure) outcome()      {}
func (Empty) outcome()            {}
func (Success) outcome()          {}

// Classify maps the result of building and sending a request onto an Outcome.
func Classify(records Records, err error) Outcome {
	var (
		validationErr *ValidationError
		remoteErr     *RemoteError
	)
	switch {
	case err == nil && records.Len() == 0:
		return Empty{}
	case err == nil:
		return Success{Records: records}
	case errors.As(err, &validationErr):
		return Rejected{Err: err}
	case errors.As(err, &remoteErr):
		return HTTPFailure{Status: remoteErr.Status, Body: remoteErr.Body}
	default:
		return TransportFailure{Err: err}
	}
}

// Presentation holds the wording of one tool's messages.
type Presentation struct {
	// Operation names the action in transport error messages, e.g. "searching by phone".
	Operation string
	// NotFound is the whole message for an empty result.
	NotFound string
	// Context follows "Found N account(s)" in the success header, e.g. " for phone 555".
	Context string
}

// Render turns an outcome into the tool's single text result. It never fails.
func (p Presentation) Render(o Outcome) string {
	switch o := o.(type) {
	case Rejected:
		return "Error: " + errorMessage(o.Err)
	case TransportFailure:
		return fmt.Sprintf("Error %s: %s", p.Operation, errorMessage(o.Err))
	case HTTPFailure:
		return fmt.Sprintf("API Error (%d): %s", o.Status, o.Body)
	case Empty:
		return p.NotFound
	case Success:
		pretty, err := o.Records.Indent()
		if err != nil {
			return fmt.Sprintf("Error %s: %s", p.Operation, err)
		}
		return fmt.Sprintf("Found %d account(s)%s:\n\n%s", o.Records.Len(), p.Context, pretty)
	default:
		return fmt.Sprintf("Error %s: unexpected outcome %T", p.Operation, o)
	}
}

func errorMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// Wording per tool.

func bulkPresentation() Presentation {
	return Presentation{
		Operation: "searching personal accounts",
		NotFound:  "No personal accounts found matching the search criteria.",
	}
}

func phonePresentation(phone string) Presentation {
	return Presentation{
		Operation: "searching by phone",
		NotFound:  "No personal accounts found for phone number: " + phone,
		Context:   " for phone " + phone,
	}
}

func emailPresentation(email string) Presentation {
	return Presentation{
		Operation: "searching by email",
		NotFound:  "No personal accounts found for email: " + email,
		Context:   " for email " + email,
	}
}
