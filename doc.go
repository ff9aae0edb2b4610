// Package ramlo turns RAML 1.0 API descriptions into a documentation view model.
//
// The module is organised around three packages:
//
//   - raml: the RAML 1.0 AST and a YAML-based loader that materialises it
//   - viewmodel: flattens the AST into resources, endpoints, parameter tables,
//     schemas, examples and security descriptors for documentation renderers
//   - walker: depth-first traversal of the resource tree
//
// # Quick Start
//
//	result, err := viewmodel.BuildWithOptions(viewmodel.WithFilePath("api.raml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, res := range result.Document.Resources {
//		fmt.Println(res.Name, len(res.Endpoints))
//	}
//
// Building from an already loaded document:
//
//	loaded, err := raml.ParseWithOptions(raml.WithFilePath("api.raml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := viewmodel.New().Build(loaded.Document)
//
// # Error Handling
//
// Only documents that cannot be loaded or serialised fail. Every other gap in
// the description (missing descriptions, unresolved type references, invalid
// JSON schemas) degrades to an empty value and is reported in
// viewmodel.Result.Warnings. Error types live in the ramlerrors package.
//
// # Command Line
//
// The ramlo command (cmd/ramlo) exposes the builder as "ramlo build" and serves
// it to MCP clients with "ramlo mcp".
package ramlo
