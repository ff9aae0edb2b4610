// Package raml loads RAML 1.0 API definitions into a typed, read-only AST.
//
// The loader reads the YAML document, resolves !include references relative
// to the including file, loads the libraries imported with `uses`, and decodes
// the result into a Document. Every type declaration keeps both its typed
// facets and a JSON-compatible Raw map, so consumers can either navigate the
// model or re-serialise the declaration as written.
//
// # Quick Start
//
//	result, err := raml.ParseWithOptions(
//		raml.WithFilePath("api.raml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, w := range result.Warnings {
//		fmt.Println("warning:", w)
//	}
//	fmt.Println(result.Document.Title)
//
// Or create a reusable Parser instance:
//
//	p := raml.New()
//	p.MaxIncludeDepth = 4
//	result, _ := p.Parse("api.raml")
//
// # Scope
//
// Resource types and traits, including those declared in libraries, are
// applied while loading: <<parameters>> are substituted and the declarations
// are merged into resources and methods, whose own values win. References to
// undeclared traits or resource types are reported in ParseResult.Warnings.
// Remote includes are rejected. A library that cannot be loaded does not fail
// the load; it is reported in ParseResult.Warnings and kept without types.
//
// # Errors
//
// Load failures are returned as *ramlerrors.ParseError, wrapping an
// *ramlerrors.IncludeError when an included file is at fault. Use errors.Is
// with ramlerrors.ErrParse or ramlerrors.ErrInclude to classify them.
package raml
