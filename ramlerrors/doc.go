// Package ramlerrors provides structured error types for ramlo.
//
// Import path: github.com/ramlo/ramlo/ramlerrors
//
// The types support [errors.Is] and [errors.As], so callers can tell a document
// that could not be loaded at all (the fatal tier) apart from the recoverable
// problems the view-model builder records as warnings.
//
// # Error Types
//
//   - [ParseError]: the RAML source could not be read, decoded, or serialised
//   - [IncludeError]: an !include or uses library could not be loaded
//   - [TypeReferenceError]: a named type reference did not resolve or is circular
//   - [ConfigError]: invalid options or configuration values
//
// # Sentinel Errors
//
//   - [ErrParse]: matches any [ParseError]
//   - [ErrInclude]: matches any [IncludeError]
//   - [ErrTypeReference]: matches any [TypeReferenceError]
//   - [ErrCircularType]: matches [TypeReferenceError] with IsCircular=true
//   - [ErrConfig]: matches any [ConfigError]
//
// # Usage
//
//	result, err := raml.LoadWithOptions(raml.WithFilePath("api.raml"))
//	if errors.Is(err, ramlerrors.ErrParse) {
//	    // not a RAML document
//	}
package ramlerrors
