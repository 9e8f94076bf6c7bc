package toolkit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hamzaessahbaoui/accounts-toolkit/internal/json"
)

// HandlerFunc is the typed logic of a child tool. T is the argument struct the raw
// JSON arguments are decoded into; its jsonschema tags describe the tool's input.
type HandlerFunc[T any] func(ctx context.Context, args T) (string, error)

type child[T any] struct {
	name        string
	description string
	schema      interface{}
	handler     HandlerFunc[T]
}

// NewChild builds a Child from a typed handler. The input schema is generated
// from T once, at construction.
func NewChild[T any](name, description string, handler func(ctx context.Context, args T) (string, error)) Child {
	return &child[T]{
		name:        name,
		description: description,
		schema:      GenerateSchema[T](),
		handler:     handler,
	}
}

func (c *child[T]) GetName() string             { return c.name }
func (c *child[T]) GetDescription() string      { return c.description }
func (c *child[T]) GetInputSchema() interface{} { return c.schema }

// Handle decodes args into T and calls the handler. Empty or null arguments
// leave T at its zero value.
func (c *child[T]) Handle(ctx context.Context, args json.RawMessage) (string, error) {
	var decoded T
	if len(args) > 0 && string(args) != "null" {
		if err := json.Unmarshal(args, &decoded); err != nil {
			return "", NewError("invalid_arguments", fmt.Sprintf("arguments for '%s': %v", c.name, err))
		}
	}

	text, err := c.handler(ctx, decoded)
	if err != nil {
		return "", NewError("handler_execution_error", fmt.Sprintf("'%s' failed: %v", c.name, err))
	}
	return text, nil
}

type parent struct {
	name        string
	description string
	children    map[string]Child
}

// NewParent groups children under a parent name. Nil children are skipped and
// a duplicate child name overwrites the earlier one, as in New.
func NewParent(name, description string, children ...Child) Parent {
	childMap := make(map[string]Child, len(children))
	for _, c := range children {
		if c == nil {
			slog.Warn("nil child provided to toolkit.NewParent, skipping", slog.String("parent", name))
			continue
		}
		if _, exists := childMap[c.GetName()]; exists {
			slog.Warn("duplicate child name in toolkit.NewParent, overwriting",
				slog.String("parent", name), slog.String("child", c.GetName()))
		}
		childMap[c.GetName()] = c
	}
	return &parent{
		name:        name,
		description: description,
		children:    childMap,
	}
}

func (p *parent) GetName() string               { return p.name }
func (p *parent) GetDescription() string        { return p.description }
func (p *parent) GetChildren() map[string]Child { return p.children }

// HandleChildren runs the requested children sequentially, in request order.
func (p *parent) HandleChildren(ctx context.Context, childRequests []ToolKitChild) ParentResponse {
	resp := ParentResponse{Name: p.name}
	for _, req := range childRequests {
		c, ok := p.children[req.Name]
		if !ok {
			resp.AddResponse(ChildResponse{
				Name:     req.Name,
				Response: NewError("child_not_found", fmt.Sprintf("Child tool '%s' not found in parent '%s'", req.Name, p.name)),
			})
			continue
		}

		text, err := c.Handle(ctx, req.Args)
		if err != nil {
			resp.AddResponse(ChildResponse{Name: req.Name, Response: err})
			continue
		}
		resp.AddResponse(ChildResponse{Name: req.Name, Response: text})
	}
	return resp
}
