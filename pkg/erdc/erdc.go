// Package erdc is the top-level entry point: it wires the lexer,
// parser, validator, view projector, metrics, layout engine, edge
// router, and SVG emitter into the single pure function described by
// the compiler's external interface.
package erdc

import (
	"fmt"
	"os"

	"github.com/dshills/erdc/pkg/ir"
	"github.com/dshills/erdc/pkg/layout"
	"github.com/dshills/erdc/pkg/lexer"
	"github.com/dshills/erdc/pkg/parser"
	"github.com/dshills/erdc/pkg/project"
	"github.com/dshills/erdc/pkg/render"
	"github.com/dshills/erdc/pkg/route"
	"github.com/dshills/erdc/pkg/svg"
	"github.com/dshills/erdc/pkg/validate"
)

// Compile parses, validates, projects, lays out, routes, and renders
// source into a complete SVG document. view selects a declared view
// ("" selects every entity); detail is one of "tables", "pk", "pk_fk",
// "all". Compile is a pure function: no I/O, no shared mutable state,
// and no concurrency within a single invocation.
func Compile(source string, view string, detail string, style render.Style) ([]byte, error) {
	schema, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}

	if err := validate.Validate(schema); err != nil {
		return nil, err
	}

	level, err := project.ParseDetailLevel(detail)
	if err != nil {
		return nil, err
	}

	rs, err := project.Project(schema, view, level)
	if err != nil {
		return nil, err
	}

	return renderSchema(rs, style), nil
}

// CompileFile reads path from disk and compiles it under the given
// view, detail, and style, returning the rendered SVG.
func CompileFile(path string, view string, detail string, style render.Style) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return Compile(string(data), view, detail, style)
}

func renderSchema(rs *ir.RenderSchema, style render.Style) []byte {
	lay := layout.Build(rs, style)
	edges := route.Route(rs, lay, style)
	return svg.Write(rs, lay, edges, style)
}

// ParseOnly lexes and parses source without validating or rendering,
// returning the raw Schema IR. Exposed for tooling that wants to
// inspect a schema (e.g. the CLI's verbose summary) without paying for
// a full compile.
func ParseOnly(source string) (*ir.Schema, error) {
	return parser.Parse(source)
}

// Lex tokenizes source alone, surfacing LexErrors before any parsing
// is attempted.
func Lex(source string) error {
	_, err := lexer.All(source)
	return err
}
