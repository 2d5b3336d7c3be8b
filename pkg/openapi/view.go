package openapi

import (
	"fmt"
	"strings"
)

// NoMatchMessage is returned by View when no operation matches
const NoMatchMessage = "No endpoints found matching the specified path and method"

// Viewer renders an already loaded document
type Viewer struct {
	parser    *Parser
	displayer *Displayer
}

func NewViewer(parser *Parser) *Viewer {
	return &Viewer{
		parser:    parser,
		displayer: NewDisplayer(parser),
	}
}

// View renders one operation when path and method pick exactly one, otherwise an index.
// A trailing slash on path asks for the index of everything below it.
func (v *Viewer) View(path, method string) (string, error) {
	showIndex := strings.HasSuffix(path, "/")
	if showIndex {
		path = strings.TrimSuffix(path, "/") + "*"
	}

	paths, err := v.parser.GetPaths(path, method)
	if err != nil {
		return "", fmt.Errorf("getting paths: %w", err)
	}

	if len(paths) == 0 {
		return NoMatchMessage, nil
	}

	if showIndex || path == "" || path == "*" {
		return v.displayer.RenderIndex(paths), nil
	}

	var exact []PathInfo
	for _, p := range paths {
		if p.Path == path {
			exact = append(exact, p)
		}
	}

	switch len(exact) {
	case 0:
		return v.displayer.RenderIndex(paths), nil
	case 1:
		return v.displayer.RenderOperation(exact[0]), nil
	default:
		return v.displayer.RenderIndex(exact), nil
	}
}
