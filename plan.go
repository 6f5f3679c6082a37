package sqlcond

import (
	"github.com/pkg/errors"
)

/*
Deferred mutation produced by `plan`. Calling it appends one complete fragment
to the accumulator. A nil frag means "emit nothing".
*/
type frag func(*Acc)

/*
Decides what a declaration contributes to the pass, without touching the
accumulator: evaluates its expressions, applies the inclusion policy of its
kind and validates its attributes. Returns a nil frag when the declaration is
skipped. Any error is returned before anything is appended, so a failed
declaration leaves the accumulator exactly as it was.
*/
func (self *Builder) plan(ctx *Ctx, decl Decl) (out frag, err error) {
	defer rec(&err)

	if decl == nil {
		panic(errInvalidInput(`planning declaration`, errors.New(`nil declaration`)))
	}

	match, prefix, field := decl.opts()
	if isBlank(prefix) {
		prefix = self.sep()
	}
	verbatim(`prefix`, prefix)
	verbatim(`field`, field)

	if !isBlank(match) && !truthy(ctx.Strict(match)) {
		return nil, nil
	}

	switch decl := decl.(type) {
	case Equal:
		return self.planEqual(ctx, prefix, decl), nil
	case Like:
		return self.planLike(ctx, prefix, decl), nil
	case Between:
		return self.planBetween(ctx, prefix, decl), nil
	case In:
		return self.planIn(ctx, prefix, decl), nil
	case Text:
		return self.planText(ctx, prefix, decl), nil
	default:
		panic(errInternal(`planning declaration`, errf(`unsupported declaration type %T`, decl)))
	}
}

func (self *Builder) planEqual(ctx *Ctx, prefix string, decl Equal) frag {
	op := decl.Op
	if op == `` {
		op = OpEq
	}
	if !ops[op] {
		panic(errConfiguration(
			`planning equality condition on `+quoteField(decl.Field),
			errf(`unsupported operator %q`, op),
		))
	}

	val := ctx.Strict(decl.Value)
	field := decl.Field

	if !isNull(val) || self.Null == NullBind {
		return func(acc *Acc) { acc.Equal(prefix, field, op, val) }
	}

	if self.Null == NullIsNull {
		switch op {
		case OpEq:
			return func(acc *Acc) { acc.IsNull(prefix, field, false) }
		case OpNeq:
			return func(acc *Acc) { acc.IsNull(prefix, field, true) }
		}
	}
	return nil
}

func (self *Builder) planLike(ctx *Ctx, prefix string, decl Like) frag {
	hasValue, hasPattern := !isBlank(decl.Value), !isBlank(decl.Pattern)
	field, not := decl.Field, decl.Not

	switch {
	case hasValue && !hasPattern:
		val := ctx.Strict(decl.Value)
		if isNull(val) {
			return nil
		}
		str, err := String(val)
		if err != nil {
			panic(err)
		}
		pattern := decl.Mode.wrap(str)
		return func(acc *Acc) { acc.Like(prefix, field, not, pattern) }

	case hasPattern && !hasValue:
		pattern := decl.Pattern
		return func(acc *Acc) { acc.LikePattern(prefix, field, not, pattern) }

	default:
		panic(errConfiguration(
			`planning like condition on `+quoteField(decl.Field),
			errors.New(`exactly one of "value" and "pattern" must be provided`),
		))
	}
}

func (self *Builder) planBetween(ctx *Ctx, prefix string, decl Between) frag {
	start := absentIfNull(ctx.Lenient(decl.Start))
	end := absentIfNull(ctx.Lenient(decl.End))
	if start == nil && end == nil {
		return nil
	}

	field := decl.Field
	return func(acc *Acc) { acc.Between(prefix, field, start, end) }
}

func (self *Builder) planIn(ctx *Ctx, prefix string, decl In) frag {
	val := ctx.Strict(decl.Value)
	if isNull(val) {
		return nil
	}

	vals := Seq(val)
	field, not := decl.Field, decl.Not
	return func(acc *Acc) { acc.In(prefix, field, not, vals) }
}

func (self *Builder) planText(ctx *Ctx, prefix string, decl Text) frag {
	if isBlank(decl.Text) {
		return nil
	}

	var args []any
	if !isBlank(decl.Value) {
		args = Seq(ctx.Strict(decl.Value))
	}

	count := countPlaceholders(decl.Text)
	if count != len(args) {
		panic(errConfiguration(
			`planning raw text condition`,
			errf(`text %q has %d placeholders, but %d arguments were provided`, decl.Text, count, len(args)),
		))
	}

	text := decl.Text
	return func(acc *Acc) { acc.Raw(prefix, text, args) }
}

// Text emitted without arguments must not contain parameters.
func verbatim(what, text string) {
	if countPlaceholders(text) != 0 {
		panic(errConfiguration(
			`planning declaration`,
			errf(`%s %q must not contain parameters`, what, text),
		))
	}
}

func absentIfNull(val any) any {
	if isNull(val) {
		return nil
	}
	return val
}

func quoteField(val string) string { return `"` + val + `"` }
