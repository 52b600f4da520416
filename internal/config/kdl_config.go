package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// LoadKDL attempts to load configuration from a .doctree.kdl file. Returns
// (nil, nil) when the file does not exist so callers can fall back to
// defaults.
func LoadKDL(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg, err := parseKDL(string(content))
	if err != nil {
		return nil, err
	}

	// Resolve a relative project root against the config file's directory.
	if cfg.Project.Root == "" {
		cfg.Project.Root = filepath.Dir(path)
	} else if !filepath.IsAbs(cfg.Project.Root) {
		cfg.Project.Root = filepath.Clean(filepath.Join(filepath.Dir(path), cfg.Project.Root))
	}

	return cfg, nil
}

func parseKDL(content string) (*Config, error) {
	cfg := Default()
	cfg.Project.Root = "" // let the file or its location decide

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "project":
			for _, cn := range n.Children {
				assignSimpleString(cn, "root", func(v string) { cfg.Project.Root = v })
				assignSimpleString(cn, "name", func(v string) { cfg.Project.Name = v })
			}
		case "entry":
			if patterns := collectStringArgs(n); len(patterns) > 0 {
				cfg.Entry = patterns
			}
		case "exclude":
			if patterns := collectStringArgs(n); len(patterns) > 0 {
				cfg.Exclude = patterns
			}
		case "external":
			if patterns := collectStringArgs(n); len(patterns) > 0 {
				cfg.External.Patterns = patterns
			}
		case "comments":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "style":
					if s, ok := firstStringArg(cn); ok {
						cfg.Comments.Style = s
					}
				case "resolve_links":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Comments.ResolveLinks = b
					}
				}
			}
		case "output":
			for _, cn := range n.Children {
				assignSimpleString(cn, "path", func(v string) { cfg.Output.Path = v })
			}
		case "version":
			if v, ok := firstIntArg(n); ok {
				cfg.Version = v
			}
		}
	}

	return cfg, nil
}

// Helper functions leveraging the kdl-go document model
func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

// collectStringArgs reads strings from inline arguments or, for block
// format, from child nodes.
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}
