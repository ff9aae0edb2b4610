package raml

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/ramlo/ramlo/ramlerrors"
)

const (
	// headerPrefix starts the first line of every RAML document.
	headerPrefix = "#%RAML"
	// defaultMaxFileSize is the default size limit for the document and its includes.
	defaultMaxFileSize int64 = 10 * 1024 * 1024
	// defaultMaxIncludeDepth bounds nested !include chains.
	defaultMaxIncludeDepth = 16
)

// Parser loads RAML 1.0 API definitions into a Document.
type Parser struct {
	// BaseDir is the directory !include and uses paths are resolved against.
	// Parse sets it to the directory of the parsed file; when empty the
	// current working directory is used.
	BaseDir string
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
	// MaxFileSize is the maximum size in bytes of the document and of each
	// included file. Default: 10MB
	MaxFileSize int64
	// MaxIncludeDepth is the maximum nesting of !include chains. Default: 16
	MaxIncludeDepth int
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return defaultMaxFileSize
}

func (p *Parser) maxIncludeDepth() int {
	if p.MaxIncludeDepth > 0 {
		return p.MaxIncludeDepth
	}
	return defaultMaxIncludeDepth
}

// ParseResult contains a loaded RAML document and load metadata.
type ParseResult struct {
	// SourcePath is the file path the document was read from, or
	// "ParseBytes.raml"/"ParseReader.raml" for in-memory sources
	SourcePath string
	// Document is the loaded AST
	Document *Document
	// Data is the JSON-compatible representation of the whole document
	Data map[string]any
	// Warnings contains non-fatal issues such as libraries that failed to load
	Warnings []string
	// LoadTime is the time taken to read and decode the source
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
}

// Parse loads the RAML document at path. Includes and libraries are resolved
// relative to the file's directory unless BaseDir is set.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	start := time.Now()
	data, err := p.readFile(path)
	if err != nil {
		return nil, &ramlerrors.ParseError{Path: path, Message: "reading file", Cause: err}
	}
	baseDir := p.BaseDir
	if baseDir == "" {
		baseDir = filepath.Dir(path)
	}
	result, err := p.parse(data, path, baseDir)
	if err != nil {
		return nil, err
	}
	result.LoadTime = time.Since(start)
	return result, nil
}

// ParseReader loads a RAML document from r.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	start := time.Now()
	data, err := io.ReadAll(io.LimitReader(r, p.maxFileSize()+1))
	if err != nil {
		return nil, &ramlerrors.ParseError{Path: "ParseReader.raml", Message: "reading input", Cause: err}
	}
	if int64(len(data)) > p.maxFileSize() {
		return nil, &ramlerrors.ParseError{Path: "ParseReader.raml", Message: fmt.Sprintf("input exceeds %d bytes", p.maxFileSize())}
	}
	result, err := p.parse(data, "ParseReader.raml", p.BaseDir)
	if err != nil {
		return nil, err
	}
	result.LoadTime = time.Since(start)
	return result, nil
}

// ParseBytes loads a RAML document from data.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	start := time.Now()
	result, err := p.parse(data, "ParseBytes.raml", p.BaseDir)
	if err != nil {
		return nil, err
	}
	result.LoadTime = time.Since(start)
	return result, nil
}

func (p *Parser) parse(data []byte, sourcePath, baseDir string) (*ParseResult, error) {
	if baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			baseDir = wd
		}
	}

	header, err := checkHeader(data)
	if err != nil {
		return nil, &ramlerrors.ParseError{Path: sourcePath, Line: 1, Message: err.Error()}
	}
	p.log().Debug("parsing RAML document", "source", sourcePath, "header", header, "bytes", len(data))

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &ramlerrors.ParseError{Path: sourcePath, Message: "invalid YAML", Cause: err}
	}
	root := resolveNode(&node)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, &ramlerrors.ParseError{Path: sourcePath, Message: "document root must be a mapping"}
	}
	if err := p.resolveIncludes(root, baseDir, 0); err != nil {
		return nil, &ramlerrors.ParseError{Path: sourcePath, Message: "resolving includes", Cause: err}
	}

	st := newDecodeState(p, baseDir)
	st.expandDocument(root)

	raw, err := nodeToValue(root)
	if err != nil {
		return nil, &ramlerrors.ParseError{Path: sourcePath, Message: "converting document", Cause: err}
	}
	docData, _ := raw.(map[string]any)
	if _, err := json.Marshal(docData); err != nil {
		return nil, &ramlerrors.ParseError{Path: sourcePath, Message: "document is not JSON serialisable", Cause: err}
	}

	doc := st.decodeDocument(root)
	doc.Raw = docData

	return &ParseResult{
		SourcePath: sourcePath,
		Document:   doc,
		Data:       docData,
		Warnings:   st.warnings,
		SourceSize: int64(len(data)),
	}, nil
}

// checkHeader validates the RAML header line and returns it.
func checkHeader(data []byte) (string, error) {
	line, err := bufio.NewReader(bytes.NewReader(data)).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "\ufeff"))
	if !strings.HasPrefix(line, headerPrefix) {
		return "", fmt.Errorf("missing %s header", headerPrefix)
	}
	fields := strings.Fields(strings.TrimPrefix(line, headerPrefix))
	if len(fields) == 0 || fields[0] != "1.0" {
		return "", fmt.Errorf("unsupported RAML version in header %q", line)
	}
	if len(fields) > 1 {
		return "", fmt.Errorf("%s fragment is not an API definition", fields[1])
	}
	return line, nil
}
