package toolkit

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/hamzaessahbaoui/accounts-toolkit/internal/json"
)

// --- Toolkit Struct and Methods ---

// Toolkit is the top-level container for Parent tools, keyed by parent name.
type Toolkit struct {
	parents map[string]Parent
	name    string
}

// New creates a Toolkit named name and registers the given parents, keyed by
// their names.
//
// Parameters:
//   - name: The toolkit identifier; it becomes the tool name when the toolkit is
//     handed to a model as one batched tool
//   - parents: The Parent implementations to register
//
// Behavior:
//   - Nil parents are skipped with a warning
//   - If duplicate parent names are detected, the last one overwrites previous instances
//   - Registration order does not matter; descriptions and MCP registration list
//     parents by name
//
// Returns:
//   - A pointer to the initialized Toolkit instance
//
// Example:
//
//	accountsParent := toolkit.NewParent("personal_accounts", "Personal account search", searchTool, phoneTool)
//	tk := toolkit.New("accounts_toolkit", accountsParent)
func New(name string, parents ...Parent) *Toolkit {
	parentMap := make(map[string]Parent, len(parents))
	for _, p := range parents {
		if p == nil {
			slog.Warn("nil parent provided to toolkit.New, skipping", slog.String("toolkit", name))
			continue
		}
		if _, exists := parentMap[p.GetName()]; exists {
			slog.Warn("duplicate parent name in toolkit.New, overwriting",
				slog.String("toolkit", name), slog.String("parent", p.GetName()))
		}
		parentMap[p.GetName()] = p
	}

	return &Toolkit{
		parents: parentMap,
		name:    name,
	}
}

// GetToolkitName returns the configured name of the toolkit instance.
func (t *Toolkit) GetToolkitName() string {
	return t.name
}

// GetToolkitSchema returns the JSON schema of the batched toolkit request for a
// model provider.
//
// Parameters:
//   - provider: The target provider identifier; only "anthropic" is known
//
// Returns:
//   - A JSON schema object describing the ToolKit request (parents, their
//     children and each child's raw arguments)
//
// Unknown providers are logged and get the Anthropic schema. The schema does not
// embed the children's argument schemas; those are listed by GetToolkitDescription.
func (t *Toolkit) GetToolkitSchema(provider string) interface{} {
	switch provider {
	case "anthropic":
		return GetToolKitSchemaForAnthropic()
	default:
		slog.Warn("unsupported schema provider, defaulting to anthropic", slog.String("provider", provider))
		return GetToolKitSchemaForAnthropic()
	}
}

// GetToolkitDescription renders an XML-like description of the toolkit for a language model:
// the toolkit name, every parent with its description, and every child with its input schema.
// Parents and children are listed in name order so the description is stable.
func (t *Toolkit) GetToolkitDescription() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("In this environment, you have access to the following <toolkit name=\"%s\">:\n", t.name))
	sb.WriteString("A <toolkit> is a collection of <parents>, a <parent> is a collection of <childs>.\n")
	sb.WriteString("Below is the list of available <parents> and their <childs>:\n")

	for _, parent := range t.sortedParents() {
		sb.WriteString(fmt.Sprintf("<parent name=\"%s\" description=\"%s\">\n", parent.GetName(), parent.GetDescription()))

		for _, child := range sortedChildren(parent) {
			schemaStr := "schema_error"
			schemaBytes, err := json.Marshal(child.GetInputSchema())
			if err == nil {
				schemaStr = string(schemaBytes)
			} else {
				slog.Error("marshal child schema",
					slog.String("parent", parent.GetName()), slog.String("child", child.GetName()), slog.Any("error", err))
			}
			sb.WriteString(fmt.Sprintf("<child name=\"%s\" description=\"%s\"><input_schema>%s</input_schema></child>\n", child.GetName(), child.GetDescription(), schemaStr))
		}
		sb.WriteString("</parent>\n")
	}
	sb.WriteString("**NOTE**: A child tool cannot be invoked directly, it must be invoked through its parent.\n")
	sb.WriteString("</toolkit>")

	return sb.String()
}

// --- Processing Methods ---

// HandleToolKit is the entry point for batched toolkit requests. It parses input
// as a ToolKit request and runs every requested child through its parent.
//
// Parameters:
//   - ctx: Propagated to every child handler, so cancelling it aborts in-flight searches
//   - input: Raw JSON payload following the ToolKit structure
//
// Returns:
//   - ToolKitResponse: One ParentResponse per requested parent, in request order
//   - error: The parse error, a "no_toolkit_parents" ToolKitError, or nil
//
// Failure handling:
//   - Invalid JSON yields a "toolkit_request_parse_error" response holding an
//     "invalid_input_json" ToolKitError, returned together with the error
//   - Unknown parents get a "_parent_error" child response with "parent_not_found"
//   - Failing children report their ToolKitError in their own ChildResponse and
//     never stop the remaining children
func (t *Toolkit) HandleToolKit(ctx context.Context, input json.RawMessage) (ToolKitResponse, error) {
	tkRequest, err := t.parseToolKitInput(input)
	if err != nil {
		slog.Warn("parse toolkit input", slog.Any("error", err))
		errResp := ToolKitResponse{
			Name: "toolkit_request_parse_error",
			Responses: []ParentResponse{
				{
					Name: "_parse_error",
					ChildsResponses: []ChildResponse{
						{Name: "_input_error", Response: NewError("invalid_input_json", err.Error())},
					},
				},
			},
		}
		return errResp, err
	}

	return t.processToolKit(ctx, tkRequest)
}

func (t *Toolkit) processToolKit(ctx context.Context, toolkitRequest ToolKit) (ToolKitResponse, error) {
	tlResponse := ToolKitResponse{
		Name: t.GetToolkitName(),
	}

	if len(toolkitRequest.ToolKitParents) == 0 {
		return tlResponse, NewError("no_toolkit_parents", "No toolkit parents specified in the request")
	}

	for _, parentReq := range toolkitRequest.ToolKitParents {
		parent, ok := t.parents[parentReq.Name]
		if !ok {
			slog.Warn("requested parent not found", slog.String("parent", parentReq.Name))
			tlResponse.AddResponse(ParentResponse{
				Name: parentReq.Name,
				ChildsResponses: []ChildResponse{
					{Name: "_parent_error", Response: NewError("parent_not_found", fmt.Sprintf("Parent toolkit '%s' not registered", parentReq.Name))},
				},
			})
			continue
		}

		tlResponse.AddResponse(parent.HandleChildren(ctx, parentReq.ToolKitChilds))
	}

	return tlResponse, nil
}

func (t *Toolkit) parseToolKitInput(input json.RawMessage) (ToolKit, error) {
	var toolkitRequest ToolKit
	if err := json.Unmarshal(input, &toolkitRequest); err != nil {
		return ToolKit{}, fmt.Errorf("error unmarshaling toolkit JSON input: %w", err)
	}
	return toolkitRequest, nil
}

func (t *Toolkit) sortedParents() []Parent {
	parents := make([]Parent, 0, len(t.parents))
	for _, name := range slices.Sorted(maps.Keys(t.parents)) {
		parents = append(parents, t.parents[name])
	}
	return parents
}

func sortedChildren(p Parent) []Child {
	children := p.GetChildren()
	sorted := make([]Child, 0, len(children))
	for _, name := range slices.Sorted(maps.Keys(children)) {
		sorted = append(sorted, children[name])
	}
	return sorted
}
