package raml

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/ramlo/ramlo/ramlerrors"
)

// resolveIncludes replaces every !include node below n, in place, with the
// content of the referenced file. RAML and YAML files are parsed and their own
// includes resolved relative to their directory; any other file becomes a
// string scalar holding the file text.
func (p *Parser) resolveIncludes(n *yaml.Node, dir string, depth int) error {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.ScalarNode && n.Tag == includeTag {
		return p.include(n, dir, depth)
	}
	for _, child := range n.Content {
		if err := p.resolveIncludes(child, dir, depth); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) include(n *yaml.Node, dir string, depth int) error {
	target := strings.TrimSpace(n.Value)
	if depth >= p.maxIncludeDepth() {
		return &ramlerrors.IncludeError{Target: target, Message: fmt.Sprintf("include depth exceeds %d", p.maxIncludeDepth())}
	}
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return &ramlerrors.IncludeError{Target: target, Message: "remote includes are not supported"}
	}

	path := target
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	data, err := p.readFile(path)
	if err != nil {
		return &ramlerrors.IncludeError{Target: target, Cause: err}
	}
	p.log().Debug("resolved include", "target", target, "bytes", len(data))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".raml", ".yaml", ".yml":
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return &ramlerrors.IncludeError{Target: target, Message: "invalid YAML", Cause: err}
		}
		root := resolveNode(&doc)
		if root == nil {
			*n = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Line: n.Line, Column: n.Column}
			return nil
		}
		if err := p.resolveIncludes(root, filepath.Dir(path), depth+1); err != nil {
			return err
		}
		*n = *root
	default:
		*n = yaml.Node{
			Kind:   yaml.ScalarNode,
			Tag:    "!!str",
			Style:  yaml.LiteralStyle,
			Value:  string(data),
			Line:   n.Line,
			Column: n.Column,
		}
	}
	return nil
}

// readFile reads path, enforcing the configured size limit.
func (p *Parser) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > p.maxFileSize() {
		return nil, fmt.Errorf("file size %d exceeds limit %d", info.Size(), p.maxFileSize())
	}
	return os.ReadFile(path) //nolint:gosec // G304: reading user-specified RAML sources is the purpose of the loader
}
