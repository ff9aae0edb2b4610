package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ramlo/ramlo/internal/httputil"
	"github.com/ramlo/ramlo/walker"
)

type listEndpointsInput struct {
	Spec    specInput `json:"spec"               jsonschema:"The RAML document to inspect"`
	Method  string    `json:"method,omitempty"   jsonschema:"Filter by HTTP method (get\\, post\\, put\\, delete\\, patch\\, etc.)"`
	URI     string    `json:"uri,omitempty"      jsonschema:"Filter by URI pattern (* = one segment\\, ** = zero or more segments\\, e.g. /users/* or /users/**)"`
	GroupBy string    `json:"group_by,omitempty" jsonschema:"Group results and return counts instead of items. Values: method"`
	Limit   int       `json:"limit,omitempty"    jsonschema:"Maximum number of results to return (default 100)"`
	Offset  int       `json:"offset,omitempty"   jsonschema:"Skip the first N results (for pagination)"`
}

type endpointSummary struct {
	Method      string   `json:"method"`
	URI         string   `json:"uri"`
	Description string   `json:"description,omitempty"`
	SecuredBy   []string `json:"secured_by,omitempty"`
	Responses   []string `json:"responses,omitempty"`
}

type listEndpointsOutput struct {
	Total     int               `json:"total"`
	Matched   int               `json:"matched"`
	Returned  int               `json:"returned"`
	Endpoints []endpointSummary `json:"endpoints,omitempty"`
	Groups    []groupCount      `json:"groups,omitempty"`
}

func handleListEndpoints(_ context.Context, _ *mcp.CallToolRequest, input listEndpointsInput) (*mcp.CallToolResult, listEndpointsOutput, error) {
	if err := validateGroupBy(input.GroupBy, []string{"method"}); err != nil {
		return errResult(err), listEndpointsOutput{}, nil
	}
	if input.Method != "" {
		method, ok := httputil.ParseMethod(input.Method)
		if !ok {
			return errResult(fmt.Errorf("invalid method %q; valid values: %s", input.Method, strings.Join(httputil.Methods, ", "))), listEndpointsOutput{}, nil
		}
		input.Method = method
	}

	parsed, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), listEndpointsOutput{}, nil
	}

	collector := walker.CollectEndpoints(parsed.Document.Resources...)
	matched := filterEndpoints(collector.All, input)

	output := listEndpointsOutput{
		Total:   len(collector.All),
		Matched: len(matched),
	}

	if input.GroupBy != "" {
		output.Groups = groupAndSort(matched, func(e *walker.EndpointInfo) []string {
			return []string{strings.ToUpper(e.Method.Method)}
		})
		return nil, output, nil
	}

	returned := paginate(matched, input.Offset, input.Limit)
	output.Returned = len(returned)
	output.Endpoints = makeSlice[endpointSummary](len(returned))
	for _, e := range returned {
		summary := endpointSummary{
			Method:      strings.ToUpper(e.Method.Method),
			URI:         e.URI,
			Description: e.Method.Description,
		}
		for _, ref := range e.Method.SecuredBy {
			if ref != nil {
				summary.SecuredBy = append(summary.SecuredBy, ref.Name)
			}
		}
		for _, resp := range e.Method.Responses {
			if resp != nil {
				summary.Responses = append(summary.Responses, resp.Code)
			}
		}
		output.Endpoints = append(output.Endpoints, summary)
	}
	return nil, output, nil
}

// filterEndpoints applies the method and URI filters.
func filterEndpoints(all []*walker.EndpointInfo, input listEndpointsInput) []*walker.EndpointInfo {
	var matched []*walker.EndpointInfo
	for _, e := range all {
		if input.Method != "" && e.Method.Method != input.Method {
			continue
		}
		if input.URI != "" && !matchURIPattern(e.URI, input.URI) {
			continue
		}
		matched = append(matched, e)
	}
	return matched
}

// matchURIPattern checks if a complete URI matches a pattern, segment by
// segment. * matches exactly one segment and ** matches zero or more.
func matchURIPattern(uri, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return uri == pattern
	}
	return matchSegments(strings.Split(uri, "/"), strings.Split(pattern, "/"))
}

func matchSegments(segs, pats []string) bool {
	for len(pats) > 0 {
		switch pats[0] {
		case "**":
			for i := 0; i <= len(segs); i++ {
				if matchSegments(segs[i:], pats[1:]) {
					return true
				}
			}
			return false
		case "*":
			if len(segs) == 0 {
				return false
			}
		default:
			if len(segs) == 0 || segs[0] != pats[0] {
				return false
			}
		}
		segs, pats = segs[1:], pats[1:]
	}
	return len(segs) == 0
}
