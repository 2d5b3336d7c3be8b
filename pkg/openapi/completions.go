package openapi

import "fmt"

// PathCompletions returns documented paths for shell completion of `docs`.
// Returns all paths matching the method filter; the shell handles prefix filtering.
func (v *Viewer) PathCompletions(method string) ([]string, error) {
	paths, err := v.parser.GetPaths("*", method)
	if err != nil {
		return nil, fmt.Errorf("getting paths: %w", err)
	}

	seen := make(map[string]bool)
	var completions []string
	for _, path := range paths {
		if !seen[path.Path] {
			seen[path.Path] = true
			completions = append(completions, path.Path)
		}
	}
	return completions, nil
}
