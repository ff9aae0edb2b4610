/*
Package viewmodel builds the documentation view model of a RAML 1.0 API.

The view model is a plain, JSON-serialisable tree that documentation
templates render directly: API metadata, one entry per top-level resource
with the endpoints of its whole subtree, uniform parameter tables and
response examples.

# Quick Start

Build from a file:

	result, err := viewmodel.BuildWithOptions(viewmodel.WithFilePath("api.raml"))
	if err != nil {
		log.Fatal(err)
	}
	for _, res := range result.Document.Resources {
		fmt.Println(res.Name, len(res.Endpoints))
	}

Or from an already loaded document:

	parsed, _ := raml.ParseWithOptions(raml.WithFilePath("api.raml"))
	result, err := viewmodel.New().Build(parsed.Document)

# Parameter Tables

URI parameters, query parameters, request bodies and the 200 response body
are all rendered as a [ParameterTable]. Its [TableHead] marks the columns
that hold a value in at least one row, so templates can hide empty columns.

Named types are expanded through their inheritance chain: the rows of every
parent come first, then the type's own properties. Parents are looked up in
the scope that declares the type, so an undotted parent of a library type
resolves inside that library. Bodies given as JSON schema are tabulated from
the schema's properties, with object-valued properties nested.

# Warnings

Build does not fail on content it cannot represent. Unknown types,
inheritance cycles and invalid JSON schemas contribute empty tables and are
listed in [Result.Warnings], each reported once per build.

# Markdown

API, documentation, endpoint, URI parameter and query parameter
descriptions are rendered from Markdown to HTML. Resource, property and
response descriptions are kept as written. Use [WithMarkdown] or
[Builder.Markdown] to change the renderer.
*/
package viewmodel
