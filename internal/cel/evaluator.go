// Package cel compiles CEL expressions that decide which input lines become
// candidates.
package cel

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"
)

// Variables bound for every evaluated line.
const (
	LineVar   = "line"
	IndexVar  = "index"
	FieldsVar = "fields"
)

// Predicate is a compiled boolean expression evaluated once per input line.
// It is safe for sequential reuse.
type Predicate struct {
	expr string
	prg  cel.Program
}

// newPredicateEnv creates the environment predicates compile against.
// Additional options can extend it (e.g., custom functions).
func newPredicateEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	allOpts := make([]cel.EnvOption, 0, 6+len(opts))
	allOpts = append(allOpts,
		cel.Variable(LineVar, cel.StringType),
		cel.Variable(IndexVar, cel.IntType),
		cel.Variable(FieldsVar, cel.ListType(cel.StringType)),
		celext.Strings(),
		celext.Lists(),
		celext.Math(),
	)
	allOpts = append(allOpts, opts...)
	return cel.NewEnv(allOpts...)
}

// NewPredicate compiles expr. The expression must produce a bool.
//
//	line.startsWith("#") == false
//	index < 100 && size(fields) > 1
func NewPredicate(expr string, opts ...cel.EnvOption) (*Predicate, error) {
	env, err := newPredicateEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	switch ast.OutputType().Kind() {
	case types.BoolKind, types.DynKind:
	default:
		return nil, fmt.Errorf("expression %q must evaluate to bool, got %s", expr, ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Predicate{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (p *Predicate) String() string {
	return p.expr
}

// Keep evaluates the predicate for one line.
func (p *Predicate) Keep(index int, line string) (bool, error) {
	out, _, err := p.prg.Eval(map[string]any{
		LineVar:   line,
		IndexVar:  index,
		FieldsVar: strings.Fields(line),
	})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	b, ok := out.(types.Bool)
	if !ok {
		return false, fmt.Errorf("expression %q returned %s, want bool", p.expr, out.Type().TypeName())
	}
	return bool(b), nil
}
