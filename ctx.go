package sqlcond

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

/*
Build context: everything a declaration needs during one build pass. `.Params`
is the read-only evaluation namespace; `.Acc` is the accumulator exclusively
owned by this pass. Create one per pass via `(*Builder).Ctx`; never share
between concurrent passes.
*/
type Ctx struct {
	Params Dict
	Eval   Evaluator
	Acc    *Acc

	// Identifies the pass in log output.
	Id  string
	Log *zerolog.Logger
}

/*
Strict evaluation: returns the value of the expression or panics with
`ErrExpression` when the source is blank or can't be evaluated. Used whenever a
missing value can't be silently treated as "no value".
*/
func (self *Ctx) Strict(src string) any {
	if isBlank(src) {
		panic(errExpression(src, errors.New(`blank expression`)))
	}

	val, err := self.evaluator().Eval(src, self.Params)
	if err != nil {
		panic(errExpression(src, errors.WithStack(err)))
	}
	return val
}

/*
Lenient evaluation: like `(*Ctx).Strict`, but returns nil instead of failing.
Used for optional values, such as bounds of `Between`, where a missing value
legitimately means "unbounded".
*/
func (self *Ctx) Lenient(src string) any {
	if isBlank(src) {
		return nil
	}

	val, err := self.evaluator().Eval(src, self.Params)
	if err != nil {
		self.debug().Str(`expr`, src).Err(err).Msg(`lenient evaluation treated as absent`)
		return nil
	}
	return val
}

func (self *Ctx) evaluator() Evaluator {
	if self.Eval != nil {
		return self.Eval
	}
	return DefaultEval
}

func (self *Ctx) acc() *Acc {
	if self.Acc == nil {
		self.Acc = new(Acc)
	}
	return self.Acc
}

// Nil-safe: a nil `*zerolog.Event` discards everything.
func (self *Ctx) debug() *zerolog.Event {
	if self.Log == nil {
		return nil
	}
	return self.Log.Debug().Str(`pass`, self.Id)
}
