package adapter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/mouse-blink/treesel/internal/model"
)

// MatchEnv is the environment a match expression sees for one node.
type MatchEnv struct {
	Path  string `expr:"path"`
	Depth int    `expr:"depth"`
	Index int    `expr:"index"`
	Key   string `expr:"key"`
	Value any    `expr:"value"`
	Leaf  bool   `expr:"leaf"`
	Kind  string `expr:"kind"`
}

// Matcher is a compiled boolean expression over MatchEnv.
type Matcher struct {
	source  string
	program *vm.Program
}

// NewMatcher compiles expression. It must evaluate to a bool.
func NewMatcher(expression string) (*Matcher, error) {
	program, err := expr.Compile(expression, expr.Env(MatchEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile match %q: %w", expression, err)
	}

	return &Matcher{source: expression, program: program}, nil
}

// String returns the source expression.
func (m *Matcher) String() string {
	return m.source
}

// Match evaluates the expression for env.
func (m *Matcher) Match(env MatchEnv) (bool, error) {
	out, err := expr.Run(m.program, env)
	if err != nil {
		return false, fmt.Errorf("evaluate match %q at %s: %w", m.source, env.Path, err)
	}

	matched, _ := out.(bool)

	return matched, nil
}

// Walk calls fn for every node below root in document order, parents
// before children.
func Walk(root *Node, fn func(path model.IndexPath, n *Node) error) error {
	type frame struct {
		node *Node
		path model.IndexPath
	}

	stack := []frame{{node: root}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !f.path.IsRoot() {
			if err := fn(f.path, f.node); err != nil {
				return err
			}
		}

		for i := f.node.Len() - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.Child(i), path: f.path.CloneWithChildIndex(i)})
		}
	}

	return nil
}

// Find returns the paths of every node below root the matcher accepts.
func (m *Matcher) Find(root *Node) ([]model.IndexPath, error) {
	var found []model.IndexPath

	err := Walk(root, func(path model.IndexPath, n *Node) error {
		ok, err := m.Match(MatchEnv{
			Path:  path.String(),
			Depth: path.Len() - 1,
			Index: path.Last(),
			Key:   n.Key,
			Value: n.Value,
			Leaf:  n.IsLeaf(),
			Kind:  n.Kind.String(),
		})
		if err != nil {
			return err
		}

		if ok {
			found = append(found, path)
		}

		return nil
	})

	return found, err
}
