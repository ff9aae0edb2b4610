package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ramlo/ramlo/internal/naming"
	"github.com/ramlo/ramlo/walker"
)

type listResourcesInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The RAML document to inspect"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of results to return (default 100)"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N results (for pagination)"`
}

type resourceSummary struct {
	Name          string `json:"name"`
	URI           string `json:"uri"`
	Description   string `json:"description,omitempty"`
	EndpointCount int    `json:"endpoint_count"`
}

type listResourcesOutput struct {
	Total     int               `json:"total"`
	Returned  int               `json:"returned"`
	Resources []resourceSummary `json:"resources,omitempty"`
}

func handleListResources(_ context.Context, _ *mcp.CallToolRequest, input listResourcesInput) (*mcp.CallToolResult, listResourcesOutput, error) {
	parsed, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), listResourcesOutput{}, nil
	}

	all := makeSlice[resourceSummary](len(parsed.Document.Resources))
	for _, res := range parsed.Document.Resources {
		if res == nil {
			continue
		}
		name := res.DisplayName
		if name == "" {
			name = naming.ResourceName(res.CompleteRelativeURI)
		}
		all = append(all, resourceSummary{
			Name:          name,
			URI:           res.CompleteRelativeURI,
			Description:   res.Description,
			EndpointCount: len(walker.CollectEndpoints(res).All),
		})
	}

	returned := paginate(all, input.Offset, input.Limit)
	return nil, listResourcesOutput{
		Total:     len(all),
		Returned:  len(returned),
		Resources: returned,
	}, nil
}
