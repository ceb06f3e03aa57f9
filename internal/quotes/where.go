package quotes

import (
	"fmt"
	"strings"
	"unicode/utf8"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// Predicate reports whether a quote is selected.
type Predicate func(Quote) (bool, error)

// whereEnv is the variable set visible to --where expressions.
type whereEnv struct {
	ID       string `expr:"id"`
	Text     string `expr:"text"`
	Category string `expr:"category"`
	Length   int    `expr:"length"`
}

// CompileWhere compiles a boolean expr-lang expression over a quote's
// id, text, category and length.
func CompileWhere(expression string) (Predicate, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return func(Quote) (bool, error) { return true, nil }, nil
	}
	program, err := exprlang.Compile(expression, exprlang.Env(whereEnv{}), exprlang.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile where %q: %w", expression, err)
	}
	return func(q Quote) (bool, error) {
		return runWhere(program, expression, q)
	}, nil
}

func runWhere(program *exprvm.Program, expression string, q Quote) (bool, error) {
	env := whereEnv{
		ID:       q.ID,
		Text:     q.Text,
		Category: q.Category,
		Length:   utf8.RuneCountInString(q.Text),
	}
	out, err := exprlang.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("evaluate where %q: %w", expression, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Select keeps the quotes matching pred.
func Select(list []Quote, pred Predicate) ([]Quote, error) {
	if pred == nil {
		return Clone(list), nil
	}
	var out []Quote
	for _, q := range list {
		ok, err := pred(q)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, q)
		}
	}
	return out, nil
}
