package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ramlo/ramlo/walker"
)

type listTypesInput struct {
	Spec    specInput `json:"spec"               jsonschema:"The RAML document to inspect"`
	Library string    `json:"library,omitempty"  jsonschema:"Filter by library alias; use \"-\" for root types only"`
	Name    string    `json:"name,omitempty"     jsonschema:"Filter by type name (supports * glob)"`
	GroupBy string    `json:"group_by,omitempty" jsonschema:"Group results and return counts instead of items. Values: library"`
	Limit   int       `json:"limit,omitempty"    jsonschema:"Maximum number of results to return (default 100)"`
	Offset  int       `json:"offset,omitempty"   jsonschema:"Skip the first N results (for pagination)"`
}

type typeSummary struct {
	Name       string   `json:"name"`
	Library    string   `json:"library,omitempty"`
	Parents    []string `json:"parents,omitempty"`
	Properties int      `json:"properties"`
	Schema     bool     `json:"schema,omitempty"`
}

type listTypesOutput struct {
	Total    int           `json:"total"`
	Matched  int           `json:"matched"`
	Returned int           `json:"returned"`
	Types    []typeSummary `json:"types,omitempty"`
	Groups   []groupCount  `json:"groups,omitempty"`
}

// rootLibrary is the group key and filter value of root declarations.
const rootLibrary = "-"

func handleListTypes(_ context.Context, _ *mcp.CallToolRequest, input listTypesInput) (*mcp.CallToolResult, listTypesOutput, error) {
	if err := validateGroupBy(input.GroupBy, []string{"library"}); err != nil {
		return errResult(err), listTypesOutput{}, nil
	}
	if err := validateGlobPattern(input.Name); err != nil {
		return errResult(err), listTypesOutput{}, nil
	}

	parsed, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), listTypesOutput{}, nil
	}

	all, err := walker.CollectTypes(parsed.Document)
	if err != nil {
		return errResult(err), listTypesOutput{}, nil
	}

	var matched []*walker.TypeInfo
	for _, ti := range all {
		if input.Library != "" && libraryKey(ti) != input.Library {
			continue
		}
		if !matchGlobName(ti.Name, input.Name) {
			continue
		}
		matched = append(matched, ti)
	}

	output := listTypesOutput{Total: len(all), Matched: len(matched)}
	if input.GroupBy != "" {
		output.Groups = groupAndSort(matched, func(ti *walker.TypeInfo) []string {
			return []string{libraryKey(ti)}
		})
		return nil, output, nil
	}

	returned := paginate(matched, input.Offset, input.Limit)
	output.Returned = len(returned)
	output.Types = makeSlice[typeSummary](len(returned))
	for _, ti := range returned {
		output.Types = append(output.Types, typeSummary{
			Name:       ti.QualifiedName(),
			Library:    ti.Library,
			Parents:    ti.Type.Type,
			Properties: len(ti.Type.Properties),
			Schema:     ti.Type.SchemaContent != nil,
		})
	}
	return nil, output, nil
}

func libraryKey(ti *walker.TypeInfo) string {
	if ti.Library == "" {
		return rootLibrary
	}
	return ti.Library
}
