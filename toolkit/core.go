// Package toolkit provides a hierarchical tool orchestration framework for AI-powered applications.
// Tools are grouped under named parents, describe their arguments with a JSON schema, and
// always answer with a single text payload that an agent runtime can hand back to a model.
//
// Core concepts:
//   - Toolkit: The top-level container that manages multiple Parent tools
//   - Parent: A category of related tools that acts as a namespace for Child tools
//   - Child: An individual tool that decodes its arguments, runs, and returns text
//
// A Toolkit can be driven two ways: as one batched tool (HandleToolKit), or flattened
// into an MCP server where every child is registered as its own tool (RegisterMCP).
//
// This file defines the core interfaces that all Parent and Child implementations must satisfy.
package toolkit

import (
	"context"

	"github.com/hamzaessahbaoui/accounts-toolkit/internal/json"
)

// Parent represents a category of related tools (Children) that share a common purpose.
// It acts as a namespace and orchestrates the execution of its child tools.
type Parent interface {
	// GetName returns the unique name of the parent toolset.
	GetName() string

	// GetDescription provides a human-readable description of the parent's purpose.
	GetDescription() string

	// GetChildren returns the child tools managed by this parent, keyed by name.
	GetChildren() map[string]Child

	// HandleChildren runs a list of child invocations in order and collects one
	// ChildResponse per invocation. Failures of one child never stop the others.
	HandleChildren(ctx context.Context, childRequests []ToolKitChild) ParentResponse
}

// Child represents an individual tool that can be executed.
type Child interface {
	// GetName returns the unique name of the child tool. When the toolkit is
	// flattened into an MCP server this is also the MCP tool name, so it must
	// be unique across the whole toolkit.
	GetName() string

	// GetDescription provides a human-readable description of what the tool does.
	GetDescription() string

	// GetInputSchema returns the JSON schema definition for the arguments.
	GetInputSchema() interface{}

	// Handle decodes the raw JSON arguments and runs the tool.
	//
	// Parameters:
	//   - ctx: The execution context for cancellation and deadlines
	//   - args: Raw JSON arguments; empty or null leaves every argument at its zero value
	//
	// Returns:
	//   - string: The tool's text result, handed back to the model unchanged
	//   - error: A ToolKitError with code "invalid_arguments" when args do not
	//     decode, or "handler_execution_error" when the tool itself fails
	Handle(ctx context.Context, args json.RawMessage) (string, error)
}
