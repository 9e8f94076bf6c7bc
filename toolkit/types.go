// Package toolkit provides a hierarchical tool orchestration framework for AI-powered applications.
// This file defines the data structures used for requests, responses, errors,
// and schema generation within the toolkit framework.
package toolkit

import (
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/hamzaessahbaoui/accounts-toolkit/internal/json"
)

// --- Core Toolkit Request/Response Structures ---

// ToolKit represents the top-level structure of a batched toolkit request.
// Several parents and children can be invoked in a single request.
type ToolKit struct {
	Name           string          `json:"name" jsonschema:"required,description=The name of the toolkit."`
	ToolKitParents []ToolKitParent `json:"parents" jsonschema:"required,description=The parent toolkits to execute within the toolkit."`
}

// ToolKitParent names a parent and the children to execute under it.
type ToolKitParent struct {
	Name          string         `json:"name" jsonschema:"required,description=The name of the parent toolkit to execute."`
	ToolKitChilds []ToolKitChild `json:"childs" jsonschema:"required,description=The child tools to execute within this parent."`
}

// ToolKitChild holds a child tool name and its raw JSON arguments. Arguments are
// decoded by the child itself.
type ToolKitChild struct {
	Name string          `json:"name" jsonschema:"required,description=The name of the child tool to execute."`
	Args json.RawMessage `json:"args" jsonschema:"required,description=The arguments for the child tool as a JSON object."`
}

// ToolKitResponse mirrors the shape of the request: one ParentResponse per
// requested parent, in request order.
type ToolKitResponse struct {
	Name      string           `json:"name"`
	Responses []ParentResponse `json:"responses,omitempty"`
}

// ParentResponse holds the ordered child responses of one parent.
type ParentResponse struct {
	Name            string          `json:"name"`
	ChildsResponses []ChildResponse `json:"childsResponses,omitempty"`
}

// ChildResponse is the result of one child invocation. Response is the child's
// text result, or a ToolKitError when the child could not produce one.
type ChildResponse struct {
	Name     string      `json:"name"`
	Response interface{} `json:"response,omitempty"`
}

// --- Error Handling ---

// ToolKitError is the structured error of the toolkit framework: a machine-readable
// code plus a human-readable message.
type ToolKitError struct {
	Code    string `json:"Code"`    // e.g. "invalid_arguments", "handler_execution_error"
	Message string `json:"Message"` // human-readable description
}

func (e ToolKitError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new ToolKitError.
//
// Codes used by the framework:
//   - "invalid_arguments": the arguments do not decode into the child's argument type
//   - "handler_execution_error": the child's handler returned an error
//   - "child_not_found": a requested child doesn't exist
//   - "parent_not_found": a requested parent doesn't exist
//   - "invalid_input_json": the toolkit request itself is not valid JSON
//   - "no_toolkit_parents": the toolkit request names no parents
func NewError(code, message string) error {
	return ToolKitError{
		Code:    code,
		Message: message,
	}
}

// --- Response Helper Methods ---

// AddResponse appends a ParentResponse to the ToolKitResponse.
func (tr *ToolKitResponse) AddResponse(pr ParentResponse) {
	tr.Responses = append(tr.Responses, pr)
}

// AddResponse appends a ChildResponse to the ParentResponse.
func (pr *ParentResponse) AddResponse(cr ChildResponse) {
	pr.ChildsResponses = append(pr.ChildsResponses, cr)
}

// --- Schema Generation Helper ---

// GenerateSchema creates a JSON schema for the generic type T using
// github.com/invopop/jsonschema. It honours jsonschema struct tags such as
// required, description, enum, minimum, maximum, default and format.
//
// Example usage:
//
//	type MyArgs struct {
//	    Name string `json:"name" jsonschema:"required,description=The user's name"`
//	    Age  int    `json:"age" jsonschema:"minimum=0,description=The user's age in years"`
//	}
//	schema := GenerateSchema[MyArgs]()
func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		DoNotReference:             true, // self-contained, no $refs
		RequiredFromJSONSchemaTags: true, // only `jsonschema:"required"` marks a field required
	}
	var v T
	return reflector.Reflect(&v)
}

// GetToolKitSchemaForAnthropic returns the schema of the batched ToolKit request
// in the shape expected by Anthropic's tool use API.
func GetToolKitSchemaForAnthropic() interface{} {
	return GenerateSchema[ToolKit]()
}
