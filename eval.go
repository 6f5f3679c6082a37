package sqlcond

import (
	"fmt"
	"sort"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	lru "github.com/hashicorp/golang-lru/v2"
)

/*
Resolves an expression against a parameter namespace. Implementations must
return an error, rather than nil, when the expression is malformed or refers to
names missing from the namespace; the caller decides whether that's fatal. See
`(*Ctx).Strict` and `(*Ctx).Lenient`.
*/
type Evaluator interface {
	Eval(src string, params Dict) (any, error)
}

// Default evaluator used by `Builder` when none is provided.
var DefaultEval Evaluator = ExprEval{}

/*
Implements `Evaluator` with "github.com/expr-lang/expr". Expressions are
type-checked against the names and value types of the namespace, which makes
unknown names a compile error. Compiled programs are cached per source text and
namespace shape in a bounded LRU cache shared by all passes.

	ExprEval{}.Eval(`age >= 18 && name != ""`, Dict{"age": 20, "name": "x"})
*/
type ExprEval struct{}

// Implement `Evaluator`.
func (ExprEval) Eval(src string, params Dict) (any, error) {
	env := map[string]any(params)
	if params.IsEmpty() {
		env = map[string]any{}
	}

	out := compile(src, env)
	if out.err != nil {
		return nil, out.err
	}
	return expr.Run(out.prog, env)
}

type programKey struct {
	src   string
	shape string
}

type compiled struct {
	prog *vm.Program
	err  error
}

/*
Maximum number of compiled programs kept by `ExprEval`. Every distinct
combination of source text and namespace shape occupies one entry; the least
recently used entries are evicted first.
*/
const ProgramCacheSize = 1024

var programs = try1(lru.New[programKey, compiled](ProgramCacheSize))

/*
A program compiled against one environment may run against any other map with
the same names and dynamic value types, which is what the shape encodes.
Susceptible to "thundering herd": concurrent misses on the same key compile
redundantly, and the last one wins.
*/
func compile(src string, env map[string]any) compiled {
	key := programKey{src, envShape(env)}

	out, ok := programs.Get(key)
	if ok {
		return out
	}

	prog, err := expr.Compile(src, expr.Env(env))
	out = compiled{prog, err}
	programs.Add(key, out)
	return out
}

func envShape(env map[string]any) string {
	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var buf strings.Builder
	for _, key := range keys {
		buf.WriteString(key)
		buf.WriteByte(' ')
		fmt.Fprintf(&buf, `%T`, env[key])
		buf.WriteByte('\n')
	}
	return buf.String()
}
