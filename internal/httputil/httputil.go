// Package httputil provides the HTTP vocabulary RAML documents draw on:
// method names, status codes and media types.
package httputil

import (
	"mime"
	"strconv"
	"strings"
)

// Status code bounds
const (
	StatusCodeLength = 3
	MinStatusCode    = 100
	MaxStatusCode    = 599
)

// HTTP method names as they appear as resource keys
const (
	MethodGet     = "get"
	MethodPatch   = "patch"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodTrace   = "trace"
	MethodConnect = "connect"
)

// Methods lists every method a RAML resource may declare.
var Methods = []string{
	MethodGet, MethodPatch, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodTrace, MethodConnect,
}

var methodSet = func() map[string]bool {
	m := make(map[string]bool, len(Methods))
	for _, name := range Methods {
		m[name] = true
	}
	return m
}()

// IsMethod reports whether key names an HTTP method. Matching is exact: RAML
// method keys are lower case.
func IsMethod(key string) bool {
	return methodSet[key]
}

// ParseMethod normalises a user supplied method name to its lower case key.
// ok is false when the name is not an HTTP method.
func ParseMethod(name string) (method string, ok bool) {
	method = strings.ToLower(strings.TrimSpace(name))
	return method, methodSet[method]
}

// ValidateStatusCode checks that a response key is a three digit HTTP status
// code between 100 and 599. RAML has no "default" response or wildcard codes.
func ValidateStatusCode(code string) bool {
	if len(code) != StatusCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	statusCode, err := strconv.Atoi(code)
	return err == nil && statusCode >= MinStatusCode && statusCode <= MaxStatusCode
}

// IsValidMediaType validates a media type string according to RFC 2045/2046.
// Accepts the */* and type/* wildcards.
func IsValidMediaType(mediaType string) bool {
	if mediaType == "*/*" {
		return true
	}

	if strings.HasSuffix(mediaType, "/*") {
		parts := strings.Split(mediaType, "/")
		return len(parts) == 2 && parts[0] != "" && parts[0] != "*"
	}

	_, _, err := mime.ParseMediaType(mediaType)
	return err == nil
}
