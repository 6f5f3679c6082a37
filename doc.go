/*
SQL Conditions: compiles declarative query conditions into SQL text with
positional "?" parameters and the matching list of arguments. Oriented towards
dynamic "where" clauses assembled from templates, where each condition may or
may not apply depending on runtime parameters.

Key Features

• Five kinds of conditions: `Equal`, `Like`, `Between`, `In` and raw `Text`.
Each decides on its own whether to emit anything, based on its expressions
evaluated against a `Dict` of parameters.

• Expressions are evaluated by an `Evaluator`, by default backed by
"github.com/expr-lang/expr". Strict evaluation fails the pass; lenient
evaluation (`Between` bounds) treats failures as "absent".

• Text and arguments never go out of sync: every fragment appends its
placeholders and arguments together, and all validation happens before
anything is appended.

• Errors are values of type `Err`, comparable with `errors.Is` against
`ErrExpression`, `ErrConfiguration` and others.

Examples

See `Builder` for an example. For conditions described as data, see `Source`.
*/
package sqlcond
