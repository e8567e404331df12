// Package security provides role-based access policies.
//
// Route permissions are declared as CEL expressions over the acting user's
// role ("role" variable, string). The transport layer evaluates the policy
// explicitly before calling into the domain; domain services never inspect
// ambient security state.
package security

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Policy is a compiled access rule.
type Policy struct {
	expr    string
	program cel.Program
}

// Evaluator compiles and evaluates role policies.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates a policy evaluator with the role variable bound.
func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("role", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("create cel env: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Compile parses and type-checks a policy expression.
// The expression must evaluate to bool, e.g.
//
//	role in ["ADMIN", "PHARMACIST"]
func (e *Evaluator) Compile(expr string) (*Policy, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile policy %q: %w", expr, issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("policy %q must evaluate to bool, got %s", expr, ast.OutputType())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build policy program %q: %w", expr, err)
	}

	return &Policy{expr: expr, program: program}, nil
}

// MustCompile compiles a policy, panics on error.
// Use for route tables declared at startup.
func (e *Evaluator) MustCompile(expr string) *Policy {
	p, err := e.Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Allows evaluates the policy for the given role.
// Evaluation errors deny access.
func (p *Policy) Allows(role string) bool {
	out, _, err := p.program.Eval(map[string]any{"role": role})
	if err != nil {
		return false
	}
	allowed, ok := out.Value().(bool)
	return ok && allowed
}

// String returns the source expression.
func (p *Policy) String() string {
	return p.expr
}

// Common policies used by the route table.
const (
	// ExprAnyRole admits every authenticated user.
	ExprAnyRole = `role in ["ADMIN", "PHARMACIST", "CASHIER"]`
	// ExprStockManagers admits users allowed to mutate inventory.
	ExprStockManagers = `role in ["ADMIN", "PHARMACIST"]`
	// ExprAdminOnly admits administrators.
	ExprAdminOnly = `role == "ADMIN"`
)
