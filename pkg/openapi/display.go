package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pb33f/libopenapi/datamodel/high/base"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#2D7FF9")).
			Padding(0, 2)

	methodStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	methodColors = map[string]string{
		"GET":    "#61AFEF",
		"POST":   "#98C379",
		"PUT":    "#E5C07B",
		"PATCH":  "#C678DD",
		"DELETE": "#E06C75",
	}

	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ABB2BF"))
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#61AFEF")).MarginTop(1)
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#98C379"))
	flagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75")).Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2D7FF9")).
			Padding(0, 1)
)

// Displayer renders parsed operations for a terminal
type Displayer struct {
	parser *Parser
}

func NewDisplayer(parser *Parser) *Displayer {
	return &Displayer{parser: parser}
}

func renderMethod(method string) string {
	color, ok := methodColors[method]
	if !ok {
		color = "#56B6C2"
	}
	return methodStyle.Background(lipgloss.Color(color)).Render(method)
}

func statusStyle(code string) lipgloss.Style {
	switch {
	case strings.HasPrefix(code, "2"):
		return nameStyle
	case strings.HasPrefix(code, "4"):
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B"))
	case strings.HasPrefix(code, "5"):
		return flagStyle
	default:
		return mutedStyle
	}
}

// RenderIndex lists operations one per line under the document title
func (d *Displayer) RenderIndex(paths []PathInfo) string {
	if len(paths) == 0 {
		return mutedStyle.Render("No endpoints found")
	}

	var out strings.Builder

	if info, _ := d.parser.GetInfo(); info != nil {
		title := " " + info.Title + " "
		if info.Version != "" {
			title += "v" + info.Version + " "
		}
		out.WriteString(titleStyle.Render(title))
		out.WriteString("\n\n")
		if info.Description != "" {
			out.WriteString(mutedStyle.Render(firstSentence(info.Description)))
			out.WriteString("\n")
		}
	}

	if auth := d.renderAuth(); auth != "" {
		out.WriteString(auth)
	}

	out.WriteString(headingStyle.Render("Endpoints"))
	out.WriteString("\n")
	for _, p := range paths {
		fmt.Fprintf(&out, "%s %s", renderMethod(p.Method), pathStyle.Render(p.Path))
		if p.Summary != "" {
			out.WriteString("  " + mutedStyle.Render(p.Summary))
		}
		out.WriteString("\n")
	}

	return out.String()
}

// RenderOperation shows the parameters and responses of one operation
func (d *Displayer) RenderOperation(p PathInfo) string {
	var out strings.Builder

	header := renderMethod(p.Method) + " " + pathStyle.Render(p.Path)
	if p.OperationID != "" {
		header += "  " + mutedStyle.Render(p.OperationID)
	}
	out.WriteString(header)
	out.WriteString("\n")

	if p.Summary != "" {
		out.WriteString("\n" + p.Summary + "\n")
	}
	if p.Description != "" && p.Description != p.Summary {
		out.WriteString(mutedStyle.Render(p.Description) + "\n")
	}

	if len(p.Parameters) > 0 {
		out.WriteString(headingStyle.Render("Parameters"))
		out.WriteString("\n")
		for _, param := range p.Parameters {
			out.WriteString(renderParameter(param))
		}
	}

	if p.Operation != nil && p.Operation.Security != nil && len(p.Operation.Security) == 0 {
		out.WriteString(headingStyle.Render("Authentication"))
		out.WriteString("\n  none\n")
	}

	if p.Responses != nil && p.Responses.Codes != nil {
		out.WriteString(headingStyle.Render("Responses"))
		out.WriteString("\n")
		responses := make(map[string]*v3.Response)
		var codes []string
		for code, resp := range p.Responses.Codes.FromOldest() {
			codes = append(codes, code)
			responses[code] = resp
		}
		sort.Strings(codes)
		for _, code := range codes {
			out.WriteString(renderResponse(code, responses[code]))
		}
	}

	return boxStyle.Render(strings.TrimRight(out.String(), "\n"))
}

func renderParameter(param *v3.Parameter) string {
	line := "  " + nameStyle.Render(param.Name) + " " + mutedStyle.Render("("+param.In+")")
	if t := schemaType(param.Schema); t != "" {
		line += " " + t
	}
	if param.Required != nil && *param.Required {
		line += " " + flagStyle.Render("required")
	}
	if param.Description != "" {
		line += "\n    " + mutedStyle.Render(param.Description)
	}
	return line + "\n"
}

func renderResponse(code string, resp *v3.Response) string {
	line := "  " + statusStyle(code).Render(code)
	if resp == nil {
		return line + "\n"
	}
	if resp.Description != "" {
		line += " " + resp.Description
	}
	if resp.Content != nil {
		var types []string
		for mediaType := range resp.Content.FromOldest() {
			types = append(types, mediaType)
		}
		if len(types) > 0 {
			line += " " + mutedStyle.Render("["+strings.Join(types, ", ")+"]")
		}
	}
	return line + "\n"
}

// renderAuth lists the header credentials declared in the document
func (d *Displayer) renderAuth() string {
	schemes, err := d.parser.GetSecuritySchemes()
	if err != nil || schemes == nil {
		return ""
	}

	var out strings.Builder
	for name, scheme := range schemes.FromOldest() {
		switch scheme.Type {
		case "apiKey":
			fmt.Fprintf(&out, "  %s %s\n", nameStyle.Render(scheme.Name), mutedStyle.Render("("+scheme.In+", "+name+")"))
		default:
			fmt.Fprintf(&out, "  %s %s\n", nameStyle.Render(name), mutedStyle.Render("("+scheme.Type+")"))
		}
	}
	if out.Len() == 0 {
		return ""
	}
	return headingStyle.Render("Authentication") + "\n" + out.String()
}

func schemaType(proxy *base.SchemaProxy) string {
	if proxy == nil {
		return ""
	}
	schema := proxy.Schema()
	if schema == nil || len(schema.Type) == 0 {
		return ""
	}
	t := strings.Join(schema.Type, "|")
	if schema.Pattern != "" {
		t += " " + mutedStyle.Render(schema.Pattern)
	}
	return t
}

func firstSentence(s string) string {
	if idx := strings.Index(s, ". "); idx > 0 && idx < 100 {
		return s[:idx+1]
	}
	if len(s) > 100 {
		return s[:97] + "..."
	}
	return s
}
