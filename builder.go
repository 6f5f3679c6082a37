package sqlcond

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

/*
Compiles condition declarations into SQL text and positional arguments. The
zero value is ready to use: it evaluates expressions with `DefaultEval`, joins
fragments with "AND" and renders null equality as `IS NULL`.

A `Builder` is immutable during use and may be shared between goroutines. Each
pass gets its own `Ctx` and `Acc`.

	var bui sqlcond.Builder
	res, err := bui.Build(
		sqlcond.Dict{"name": "bob", "ids": []int{1, 2}, "min": 18},
		sqlcond.Like{Field: "u.name", Value: "name"},
		sqlcond.In{Field: "u.id", Value: "ids"},
		sqlcond.Between{Field: "u.age", Start: "min", End: "max"},
	)

	// res.Text: u.name LIKE ? AND u.id IN (?, ?) AND u.age >= ?
	// res.Args: ["%bob%", 1, 2, 18]
*/
type Builder struct {
	Eval Evaluator
	Sep  string
	Null NullPolicy
	Log  *zerolog.Logger
}

/*
Runs one build pass: processes the declarations in order against a fresh
accumulator and returns the result. The first error aborts the pass; no
partial result is returned.
*/
func (self *Builder) Build(params Dict, decls ...Decl) (Result, error) {
	ctx := self.Ctx(params)

	for _, decl := range decls {
		err := self.Append(ctx, decl)
		if err != nil {
			return Result{}, err
		}
	}

	res := ctx.Acc.Result()
	ctx.debug().Str(`text`, res.Text).Int(`args`, len(res.Args)).Msg(`pass complete`)
	return res, nil
}

/*
Same as `(*Builder).Build` but accepts any input supported by `DictOf`, such as
a struct. Conversion failures are returned as errors.
*/
func (self *Builder) BuildOf(params any, decls ...Decl) (_ Result, err error) {
	defer rec(&err)
	return self.Build(DictOf(params), decls...)
}

/*
Creates the context for a new pass, with an empty accumulator. Use together
with `(*Builder).Append` when declarations arrive one at a time.
*/
func (self *Builder) Ctx(params Dict) *Ctx {
	return &Ctx{
		Params: params,
		Eval:   self.Eval,
		Acc:    new(Acc),
		Id:     uuid.NewString(),
		Log:    self.Log,
	}
}

/*
Processes one declaration: plans it, then appends its fragment to the
context's accumulator if it wasn't skipped. On error, the accumulator is left
untouched and the pass should be abandoned.
*/
func (self *Builder) Append(ctx *Ctx, decl Decl) error {
	frag, err := self.plan(ctx, decl)
	if err != nil {
		ctx.debug().Err(err).Type(`decl`, decl).Msg(`declaration failed`)
		return err
	}

	if frag == nil {
		ctx.debug().Type(`decl`, decl).Msg(`declaration skipped`)
		return nil
	}

	acc := ctx.acc()
	before := acc.Len()
	frag(acc)
	ctx.debug().Type(`decl`, decl).Int(`args`, acc.Len()-before).Msg(`declaration emitted`)
	return nil
}

func (self *Builder) sep() string {
	if self.Sep != `` {
		return self.Sep
	}
	return DefaultSep
}
