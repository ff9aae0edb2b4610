package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ramlo/ramlo/viewmodel"
)

type buildInput struct {
	Spec     specInput `json:"spec"               jsonschema:"The RAML document to build"`
	Markdown *bool     `json:"markdown,omitempty" jsonschema:"Render Markdown descriptions to HTML (default from RAMLO_MARKDOWN_ENABLED)"`
	Full     bool      `json:"full,omitempty"     jsonschema:"Return the full view model instead of a summary"`
}

type buildOutput struct {
	Title               string   `json:"title"`
	Version             string   `json:"version,omitempty"`
	BaseURI             string   `json:"base_uri,omitempty"`
	ResourceCount       int      `json:"resource_count"`
	EndpointCount       int      `json:"endpoint_count"`
	TypeCount           int      `json:"type_count"`
	SecuritySchemeCount int      `json:"security_scheme_count"`
	Warnings            []string `json:"warnings,omitempty"`
	// Document is the *viewmodel.APIDocument when full output was requested.
	// It is untyped because parameter tables nest recursively.
	Document any `json:"document,omitempty"`
}

func handleBuild(_ context.Context, _ *mcp.CallToolRequest, input buildInput) (*mcp.CallToolResult, buildOutput, error) {
	parsed, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), buildOutput{}, nil
	}

	markdown := cfg.Markdown
	if input.Markdown != nil {
		markdown = *input.Markdown
	}

	result, err := viewmodel.BuildWithOptions(
		viewmodel.WithParsed(parsed),
		viewmodel.WithMarkdown(markdown),
	)
	if err != nil {
		return errResult(err), buildOutput{}, nil
	}

	api := result.Document
	output := buildOutput{
		Title:               api.Title,
		Version:             api.Version,
		BaseURI:             api.BaseURI,
		ResourceCount:       result.Stats.ResourceCount,
		EndpointCount:       result.Stats.EndpointCount,
		TypeCount:           result.Stats.TypeCount,
		SecuritySchemeCount: result.Stats.SecuritySchemeCount,
		Warnings:            result.Warnings,
	}
	if input.Full {
		output.Document = api
	}
	return nil, output, nil
}
