package openapi

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/datamodel/high/base"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
	"github.com/pb33f/libopenapi/orderedmap"
)

// Parser holds one parsed OpenAPI v3 document
type Parser struct {
	document libopenapi.Document
	model    *libopenapi.DocumentModel[v3.Document]
}

func NewParser() *Parser {
	return &Parser{}
}

// LoadFromFile parses a JSON or YAML document from disk
func (p *Parser) LoadFromFile(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading file %s: %w", filePath, err)
	}

	return p.LoadFromBytes(data)
}

func (p *Parser) LoadFromBytes(data []byte) error {
	document, err := libopenapi.NewDocument(data)
	if err != nil {
		return fmt.Errorf("parsing OpenAPI document: %w", err)
	}

	model, errs := document.BuildV3Model()
	if len(errs) > 0 {
		return fmt.Errorf("building v3 model: %v", errs)
	}

	p.document = document
	p.model = model

	return nil
}

type PathInfo struct {
	Path        string
	Method      string
	OperationID string
	Summary     string
	Description string
	Tags        []string
	Operation   *v3.Operation
	Parameters  []*v3.Parameter
	Responses   *v3.Responses
}

// GetPaths lists operations whose path and method match the filters.
// A trailing * in pathFilter matches by prefix; methodFilter accepts a comma list.
func (p *Parser) GetPaths(pathFilter, methodFilter string) ([]PathInfo, error) {
	if p.model == nil {
		return nil, fmt.Errorf("no OpenAPI document loaded")
	}

	var paths []PathInfo

	if p.model.Model.Paths == nil || p.model.Model.Paths.PathItems == nil {
		return paths, nil
	}

	for pathPattern, pathItem := range p.model.Model.Paths.PathItems.FromOldest() {
		if !matchesPathFilter(pathPattern, pathFilter) {
			continue
		}

		for method, op := range getOperations(pathItem) {
			if !matchesMethodFilter(method, methodFilter) {
				continue
			}

			paths = append(paths, PathInfo{
				Path:        pathPattern,
				Method:      strings.ToUpper(method),
				OperationID: op.OperationId,
				Summary:     op.Summary,
				Description: op.Description,
				Tags:        op.Tags,
				Operation:   op,
				Parameters:  mergeParameters(pathItem.Parameters, op.Parameters),
				Responses:   op.Responses,
			})
		}
	}

	sort.Slice(paths, func(i, j int) bool {
		if paths[i].Path != paths[j].Path {
			return paths[i].Path < paths[j].Path
		}
		return methodOrder(paths[i].Method) < methodOrder(paths[j].Method)
	})

	return paths, nil
}

// Operation finds an operation by its operationId
func (p *Parser) Operation(operationID string) (PathInfo, bool) {
	paths, err := p.GetPaths("*", "*")
	if err != nil {
		return PathInfo{}, false
	}
	for _, info := range paths {
		if info.OperationID == operationID {
			return info, true
		}
	}
	return PathInfo{}, false
}

func (p *Parser) GetInfo() (*base.Info, error) {
	if p.model == nil {
		return nil, fmt.Errorf("no OpenAPI document loaded")
	}
	return p.model.Model.Info, nil
}

func (p *Parser) GetSecuritySchemes() (*orderedmap.Map[string, *v3.SecurityScheme], error) {
	if p.model == nil {
		return nil, fmt.Errorf("no OpenAPI document loaded")
	}
	if p.model.Model.Components == nil {
		return nil, nil
	}
	return p.model.Model.Components.SecuritySchemes, nil
}

func (p *Parser) GetSecurity() []*base.SecurityRequirement {
	if p.model == nil {
		return nil
	}
	return p.model.Model.Security
}

func matchesPathFilter(path, filter string) bool {
	if filter == "" || filter == "*" {
		return true
	}

	if strings.HasSuffix(filter, "*") {
		return strings.HasPrefix(path, strings.TrimSuffix(filter, "*"))
	}

	return path == filter
}

func matchesMethodFilter(method, filter string) bool {
	if filter == "" || strings.EqualFold(filter, "ANY") || filter == "*" {
		return true
	}

	for _, m := range strings.Split(filter, ",") {
		if strings.EqualFold(method, strings.TrimSpace(m)) {
			return true
		}
	}
	return false
}

func getOperations(pathItem *v3.PathItem) map[string]*v3.Operation {
	ops := make(map[string]*v3.Operation)

	candidates := map[string]*v3.Operation{
		"get":     pathItem.Get,
		"post":    pathItem.Post,
		"put":     pathItem.Put,
		"delete":  pathItem.Delete,
		"patch":   pathItem.Patch,
		"head":    pathItem.Head,
		"options": pathItem.Options,
	}
	for method, op := range candidates {
		if op != nil {
			ops[method] = op
		}
	}

	return ops
}

// mergeParameters lets operation parameters override path-level ones with the same location and name
func mergeParameters(pathParams, opParams []*v3.Parameter) []*v3.Parameter {
	paramMap := make(map[string]*v3.Parameter)

	for _, params := range [][]*v3.Parameter{pathParams, opParams} {
		for _, p := range params {
			if p.Name != "" && p.In != "" {
				paramMap[p.In+":"+p.Name] = p
			}
		}
	}

	result := make([]*v3.Parameter, 0, len(paramMap))
	for _, p := range paramMap {
		result = append(result, p)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].In != result[j].In {
			return parameterInOrder(result[i].In) < parameterInOrder(result[j].In)
		}
		return result[i].Name < result[j].Name
	})

	return result
}

var (
	methodRank = map[string]int{"GET": 0, "POST": 1, "PUT": 2, "PATCH": 3, "DELETE": 4, "HEAD": 5, "OPTIONS": 6}
	inRank     = map[string]int{"path": 0, "query": 1, "header": 2, "cookie": 3}
)

func methodOrder(method string) int {
	if v, ok := methodRank[method]; ok {
		return v
	}
	return len(methodRank)
}

func parameterInOrder(in string) int {
	if v, ok := inRank[in]; ok {
		return v
	}
	return len(inRank)
}
