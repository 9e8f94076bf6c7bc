package toolkit_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamzaessahbaoui/accounts-toolkit/internal/json"
	"github.com/hamzaessahbaoui/accounts-toolkit/toolkit"
)

type testArgs struct {
	Val string `json:"val"`
}

func createTestParent(t *testing.T, name string, children ...toolkit.Child) toolkit.Parent {
	t.Helper()
	return toolkit.NewParent(name, "desc_"+name, children...)
}

func createTestChildFn(t *testing.T, name, retVal string, shouldErr bool) toolkit.Child {
	t.Helper()
	return toolkit.NewChild(name, "desc_"+name, func(ctx context.Context, args testArgs) (string, error) {
		if shouldErr {
			return "", fmt.Errorf("child_err_%s", name)
		}
		return retVal + ":" + args.Val, nil
	})
}

func TestNew(t *testing.T) {
	parent1 := createTestParent(t, "parent1", createTestChildFn(t, "child1a", "res1a", false))
	parent2 := createTestParent(t, "parent2", createTestChildFn(t, "child2a", "res2a", false))

	tests := []struct {
		name        string
		kName       string
		parents     []toolkit.Parent
		expectNames []string
	}{
		{name: "no parents", kName: "empty_tk", parents: []toolkit.Parent{}},
		{name: "one parent", kName: "one_parent_tk", parents: []toolkit.Parent{parent1}, expectNames: []string{"parent1"}},
		{name: "two parents", kName: "two_parent_tk", parents: []toolkit.Parent{parent1, parent2}, expectNames: []string{"parent1", "parent2"}},
		{name: "nil parent ignored", kName: "nil_ignored_tk", parents: []toolkit.Parent{parent1, nil, parent2}, expectNames: []string{"parent1", "parent2"}},
		{name: "duplicate parent overwrites", kName: "dup_overwrite_tk", parents: []toolkit.Parent{parent1, parent2, parent1}, expectNames: []string{"parent1", "parent2"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tk := toolkit.New(tc.kName, tc.parents...)
			require.NotNil(t, tk)
			assert.Equal(t, tc.kName, tk.GetToolkitName())

			desc := tk.GetToolkitDescription()
			assert.Equal(t, len(tc.expectNames), strings.Count(desc, "<parent name="))
			for _, name := range tc.expectNames {
				assert.Contains(t, desc, fmt.Sprintf(`<parent name="%s"`, name))
			}
		})
	}
}

func TestHandleToolKit_Success(t *testing.T) {
	tk := toolkit.New("test_handle_success",
		createTestParent(t, "parent1",
			createTestChildFn(t, "c1a", "r1a", false),
			createTestChildFn(t, "c1b", "r1b", false),
		),
		createTestParent(t, "parent2",
			createTestChildFn(t, "c2a", "r2a", false),
		),
	)

	inputJSON := `{
		"name": "toolkit",
		"parents": [
			{"name": "parent1", "childs": [
				{"name": "c1b", "args": {"val": "v1b"}},
				{"name": "c1a", "args": {"val": "v1a"}}
			]},
			{"name": "parent2", "childs": [
				{"name": "c2a", "args": {"val": "v2a"}}
			]}
		]
	}`

	resp, err := tk.HandleToolKit(context.Background(), json.RawMessage(inputJSON))
	require.NoError(t, err)
	assert.Equal(t, "test_handle_success", resp.Name)
	require.Len(t, resp.Responses, 2)

	pr1 := resp.Responses[0]
	assert.Equal(t, "parent1", pr1.Name)
	require.Len(t, pr1.ChildsResponses, 2)
	assert.Equal(t, toolkit.ChildResponse{Name: "c1b", Response: "r1b:v1b"}, pr1.ChildsResponses[0])
	assert.Equal(t, toolkit.ChildResponse{Name: "c1a", Response: "r1a:v1a"}, pr1.ChildsResponses[1])

	pr2 := resp.Responses[1]
	assert.Equal(t, "parent2", pr2.Name)
	require.Len(t, pr2.ChildsResponses, 1)
	assert.Equal(t, toolkit.ChildResponse{Name: "c2a", Response: "r2a:v2a"}, pr2.ChildsResponses[0])
}

func TestHandleToolKit_ParseError(t *testing.T) {
	tk := toolkit.New("test_parse_error")

	resp, err := tk.HandleToolKit(context.Background(), json.RawMessage(`{"invalid_json...`))
	require.Error(t, err)
	assert.Equal(t, "toolkit_request_parse_error", resp.Name)
	require.Len(t, resp.Responses, 1)
	pr := resp.Responses[0]
	assert.Equal(t, "_parse_error", pr.Name)
	require.Len(t, pr.ChildsResponses, 1)
	cr := pr.ChildsResponses[0]
	assert.Equal(t, "_input_error", cr.Name)
	tkErr, ok := cr.Response.(toolkit.ToolKitError)
	require.True(t, ok, "Expected response to be ToolKitError")
	assert.Equal(t, "invalid_input_json", tkErr.Code)
}

func TestHandleToolKit_NoParents(t *testing.T) {
	tk := toolkit.New("test_no_parents")

	resp, err := tk.HandleToolKit(context.Background(), json.RawMessage(`{"name":"toolkit","parents":[]}`))
	require.Error(t, err)
	assert.Equal(t, "test_no_parents", resp.Name)
	assert.Empty(t, resp.Responses)

	tkErr, ok := err.(toolkit.ToolKitError)
	require.True(t, ok)
	assert.Equal(t, "no_toolkit_parents", tkErr.Code)
}

func TestHandleToolKit_Errors(t *testing.T) {
	tk := toolkit.New("test_errors",
		createTestParent(t, "parent1",
			createTestChildFn(t, "c1a", "r1a", false),
			createTestChildFn(t, "c1a_err", "r1a", true),
		),
	)

	tests := []struct {
		name       string
		input      string
		parentName string
		childName  string
		code       string
	}{
		{
			name:       "parent not found",
			input:      `{"name":"toolkit","parents":[{"name":"non_existent_parent","childs":[]}]}`,
			parentName: "non_existent_parent",
			childName:  "_parent_error",
			code:       "parent_not_found",
		},
		{
			name:       "child not found",
			input:      `{"name":"toolkit","parents":[{"name":"parent1","childs":[{"name":"non_existent_child","args":{}}]}]}`,
			parentName: "parent1",
			childName:  "non_existent_child",
			code:       "child_not_found",
		},
		{
			name:       "child handler error",
			input:      `{"name":"toolkit","parents":[{"name":"parent1","childs":[{"name":"c1a_err","args":{"val":"v1"}}]}]}`,
			parentName: "parent1",
			childName:  "c1a_err",
			code:       "handler_execution_error",
		},
		{
			name:       "child unmarshal error",
			input:      `{"name":"toolkit","parents":[{"name":"parent1","childs":[{"name":"c1a","args":{"val":123}}]}]}`,
			parentName: "parent1",
			childName:  "c1a",
			code:       "invalid_arguments",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := tk.HandleToolKit(context.Background(), json.RawMessage(tc.input))
			require.NoError(t, err)
			require.Len(t, resp.Responses, 1)

			pr := resp.Responses[0]
			assert.Equal(t, tc.parentName, pr.Name)
			require.Len(t, pr.ChildsResponses, 1)
			cr := pr.ChildsResponses[0]
			assert.Equal(t, tc.childName, cr.Name)
			tkErr, ok := cr.Response.(toolkit.ToolKitError)
			require.True(t, ok, "Expected response to be ToolKitError")
			assert.Equal(t, tc.code, tkErr.Code)
		})
	}
}

func TestGetToolkitDescription(t *testing.T) {
	tk := toolkit.New("tk_full",
		createTestParent(t, "p2",
			createTestChildFn(t, "c2b", "r2b", false),
			createTestChildFn(t, "c2a", "r2a", false),
		),
		createTestParent(t, "p1", createTestChildFn(t, "c1a", "r1a", false)),
		createTestParent(t, "emptyP"),
	)

	desc := tk.GetToolkitDescription()
	for _, expected := range []string{
		`<toolkit name="tk_full">`,
		`<parent name="p1" description="desc_p1">`,
		`<child name="c1a" description="desc_c1a">`,
		`"properties":{"val":`,
		`<parent name="p2" description="desc_p2">`,
		`<child name="c2a" description="desc_c2a">`,
		`<child name="c2b" description="desc_c2b">`,
		`<parent name="emptyP" description="desc_emptyP">`,
		`</toolkit>`,
	} {
		assert.Contains(t, desc, expected)
	}

	// Parents and children are listed in name order.
	assert.Less(t, strings.Index(desc, `<parent name="emptyP"`), strings.Index(desc, `<parent name="p1"`))
	assert.Less(t, strings.Index(desc, `<parent name="p1"`), strings.Index(desc, `<parent name="p2"`))
	assert.Less(t, strings.Index(desc, `<child name="c2a"`), strings.Index(desc, `<child name="c2b"`))
	assert.Equal(t, desc, tk.GetToolkitDescription())
}

func TestGetToolkitSchema(t *testing.T) {
	tk := toolkit.New("test_schema")

	anthropicSchema := tk.GetToolkitSchema("anthropic")
	schemaPtr, ok := anthropicSchema.(*jsonschema.Schema)
	require.True(t, ok, "Anthropic schema should be a *jsonschema.Schema")
	assert.Equal(t, "object", schemaPtr.Type)
	assert.NotNil(t, schemaPtr.Properties)

	assert.Equal(t, anthropicSchema, tk.GetToolkitSchema("unknown_provider"))
}
