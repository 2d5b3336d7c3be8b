// Package urlformat builds request URLs from templates with {name}
// placeholders and a typed options value.
package urlformat

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// placeholderPattern matches {name} tokens; any other brace is left alone
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// BindingError reports a placeholder with no matching option field
type BindingError struct {
	Field    string
	Template string
}

// Error implements the error interface
func (e *BindingError) Error() string {
	return fmt.Sprintf("template placeholder {%s} has no matching option field", e.Field)
}

// Formatter substitutes placeholders and appends unused fields as query parameters.
// The zero value is ready to use and safe for concurrent use.
type Formatter struct{}

// Format binds opts into template.
//
// Placeholder names match field names case-insensitively. Fields not consumed by
// a placeholder are appended as query parameters in declaration order unless they
// hold a zero value.
func (Formatter) Format(template string, opts Binder) (string, error) {
	var fields []Field
	if opts != nil {
		fields = opts.URLFields()
	}

	used := make([]bool, len(fields))
	var bindErr *BindingError

	result := placeholderPattern.ReplaceAllStringFunc(template, func(token string) string {
		if bindErr != nil {
			return token
		}
		name := token[1 : len(token)-1]
		idx := lookup(fields, name)
		if idx < 0 {
			bindErr = &BindingError{Field: name, Template: template}
			return token
		}
		used[idx] = true
		return Escape(fields[idx].Value.String())
	})
	if bindErr != nil {
		return "", bindErr
	}

	// Fields sharing a name with a consumed field are consumed too
	for i, f := range fields {
		if used[i] {
			continue
		}
		for j := range fields {
			if used[j] && strings.EqualFold(fields[j].Name, f.Name) {
				used[i] = true
				break
			}
		}
	}

	var pairs []string
	for i, f := range fields {
		if used[i] || f.Value.IsZero() {
			continue
		}
		pairs = append(pairs, Escape(f.Name)+"="+Escape(f.Value.String()))
	}
	if len(pairs) == 0 {
		return result, nil
	}

	sep := "?"
	if strings.Contains(result, "?") {
		sep = "&"
		if strings.HasSuffix(result, "?") || strings.HasSuffix(result, "&") {
			sep = ""
		}
	}
	return result + sep + strings.Join(pairs, "&"), nil
}

// Format binds opts into template with a zero Formatter
func Format(template string, opts Binder) (string, error) {
	return Formatter{}.Format(template, opts)
}

// Placeholders returns the placeholder names in template, in order of appearance
func Placeholders(template string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// Escape percent-encodes everything except RFC 3986 unreserved characters
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// lookup returns the index of the first field named name, ignoring case
func lookup(fields []Field, name string) int {
	for i, f := range fields {
		if strings.EqualFold(f.Name, name) {
			return i
		}
	}
	return -1
}
