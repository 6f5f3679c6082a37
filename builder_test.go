package sqlcond

import (
	"bytes"
	"database/sql"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestEqual(t *testing.T) {
	t.Run(`value`, func(t *testing.T) {
		res := build(t, Dict{`name`: `abc`}, Equal{Field: `one`, Value: `name`})
		eq(t, Result{`one = ?`, list(`abc`)}, res)
	})

	t.Run(`expression`, func(t *testing.T) {
		res := build(t, Dict{`age`: 10}, Equal{Field: `one`, Value: `age + 1`})
		eq(t, Result{`one = ?`, list(11)}, res)
	})

	t.Run(`operators`, func(t *testing.T) {
		res := build(
			t,
			Dict{`age`: 10},
			Equal{Field: `one`, Op: OpGt, Value: `age`},
			Equal{Field: `two`, Op: OpLte, Value: `age`},
			Equal{Field: `three`, Op: OpNeq, Value: `age`},
		)
		eq(t, Result{`one > ? AND two <= ? AND three <> ?`, list(10, 10, 10)}, res)
	})

	t.Run(`unsupported operator`, func(t *testing.T) {
		errIs(t, buildErr(Dict{`age`: 10}, Equal{Field: `one`, Op: `like`, Value: `age`}), ErrConfiguration)
	})

	t.Run(`unknown name`, func(t *testing.T) {
		errIs(t, buildErr(Dict{}, Equal{Field: `one`, Value: `missing`}), ErrExpression)
	})

	t.Run(`malformed expression`, func(t *testing.T) {
		errIs(t, buildErr(Dict{`age`: 10}, Equal{Field: `one`, Value: `age +`}), ErrExpression)
	})

	t.Run(`blank expression`, func(t *testing.T) {
		errIs(t, buildErr(Dict{`age`: 10}, Equal{Field: `one`, Value: ` `}), ErrExpression)
	})
}

func TestEqual_null_policy(t *testing.T) {
	params := Dict{`val`: nil, `num`: sql.NullInt64{}, `str`: sql.NullString{}}
	decls := []Decl{
		Equal{Field: `one`, Value: `val`},
		Equal{Field: `two`, Op: OpNeq, Value: `num`},
		Equal{Field: `three`, Op: OpGt, Value: `str`},
	}

	test := func(null NullPolicy, exp Result) {
		t.Helper()
		bui := Builder{Null: null}
		res, err := bui.Build(params, decls...)
		noErr(t, err)
		eq(t, exp, res)
	}

	test(NullIsNull, Result{`one IS NULL AND two IS NOT NULL`, nil})
	test(NullSkip, Result{})
	test(NullBind, Result{
		`one = ? AND two <> ? AND three > ?`,
		list(nil, sql.NullInt64{}, sql.NullString{}),
	})
}

func TestLike(t *testing.T) {
	params := Dict{`name`: `bob`, `num`: 12.5, `none`: nil}

	t.Run(`value`, func(t *testing.T) {
		res := build(t, params, Like{Field: `one`, Value: `name`})
		eq(t, Result{`one LIKE ?`, list(`%bob%`)}, res)
	})

	t.Run(`modes`, func(t *testing.T) {
		res := build(
			t,
			params,
			Like{Field: `one`, Value: `name`, Mode: LikeStarts},
			Like{Field: `two`, Value: `num`, Mode: LikeEnds},
			Like{Field: `three`, Value: `name`, Not: true},
		)
		eq(t, Result{
			`one LIKE ? AND two LIKE ? AND three NOT LIKE ?`,
			list(`bob%`, `%12.5`, `%bob%`),
		}, res)
	})

	t.Run(`pattern`, func(t *testing.T) {
		res := build(t, params, Like{Field: `one`, Pattern: `b_b%`})
		eq(t, Result{`one LIKE ?`, list(`b_b%`)}, res)
	})

	t.Run(`pattern is not evaluated`, func(t *testing.T) {
		res := build(t, params, Like{Field: `one`, Pattern: `name`})
		eq(t, Result{`one LIKE ?`, list(`name`)}, res)
	})

	t.Run(`null value`, func(t *testing.T) {
		eq(t, Result{}, build(t, params, Like{Field: `one`, Value: `none`}))
	})

	t.Run(`both blank`, func(t *testing.T) {
		errIs(t, buildErr(params, Like{Field: `one`, Value: ` `}), ErrConfiguration)
	})

	t.Run(`both present`, func(t *testing.T) {
		errIs(t, buildErr(params, Like{Field: `one`, Value: `name`, Pattern: `b%`}), ErrConfiguration)
	})

	t.Run(`unknown name`, func(t *testing.T) {
		errIs(t, buildErr(params, Like{Field: `one`, Value: `missing`}), ErrExpression)
	})

	t.Run(`unsupported value type`, func(t *testing.T) {
		errIs(t, buildErr(Dict{`val`: struct{}{}}, Like{Field: `one`, Value: `val`}), ErrInvalidInput)
	})
}

func TestBetween(t *testing.T) {
	params := Dict{`start`: 5, `end`: 10, `none`: nil}

	test := func(decl Between, exp Result) {
		t.Helper()
		eq(t, exp, build(t, params, decl))
	}

	test(Between{Field: `one`, Start: `start`, End: `end`}, Result{`one BETWEEN ? AND ?`, list(5, 10)})
	test(Between{Field: `one`, Start: `start`}, Result{`one >= ?`, list(5)})
	test(Between{Field: `one`, End: `end`}, Result{`one <= ?`, list(10)})
	test(Between{Field: `one`}, Result{})

	test(Between{Field: `one`, Start: `start`, End: `missing`}, Result{`one >= ?`, list(5)})
	test(Between{Field: `one`, Start: `none`, End: `end`}, Result{`one <= ?`, list(10)})
	test(Between{Field: `one`, Start: `start +`, End: `missing`}, Result{})
}

func TestIn(t *testing.T) {
	test := func(val interface{}, exp Result) {
		t.Helper()
		eq(t, exp, build(t, Dict{`val`: val}, In{Field: `one`, Value: `val`}))
	}

	test([]int{1, 2, 3}, Result{`one IN (?, ?, ?)`, list(1, 2, 3)})
	test([3]string{`a`, `b`, `c`}, Result{`one IN (?, ?, ?)`, list(`a`, `b`, `c`)})
	test(7, Result{`one IN (?)`, list(7)})
	test(`seven`, Result{`one IN (?)`, list(`seven`)})
	test([]byte(`blob`), Result{`one IN (?)`, list([]byte(`blob`))})
	test(nil, Result{})
	test([]int(nil), Result{})
	test([]int{}, Result{`1 = 0`, nil})

	t.Run(`expression`, func(t *testing.T) {
		res := build(t, Dict{`ids`: []int{1, 2, 3}}, In{Field: `one`, Value: `filter(ids, # > 1)`})
		eq(t, Result{`one IN (?, ?)`, list(2, 3)}, res)
	})

	t.Run(`not`, func(t *testing.T) {
		res := build(t, Dict{`ids`: []int{1, 2}}, In{Field: `one`, Value: `ids`, Not: true})
		eq(t, Result{`one NOT IN (?, ?)`, list(1, 2)}, res)
	})

	t.Run(`unknown name`, func(t *testing.T) {
		errIs(t, buildErr(Dict{}, In{Field: `one`, Value: `ids`}), ErrExpression)
	})
}

func TestText(t *testing.T) {
	t.Run(`without arguments`, func(t *testing.T) {
		res := build(t, nil, Text{Text: `deleted_at IS NULL`})
		eq(t, Result{`deleted_at IS NULL`, nil}, res)
	})

	t.Run(`with arguments`, func(t *testing.T) {
		res := build(
			t,
			Dict{`pair`: []int{1, 2}, `one`: 3},
			Text{Text: `(one = ? OR two = ?)`, Value: `pair`},
			Text{Text: `three > ?`, Value: `one`},
		)
		eq(t, Result{`(one = ? OR two = ?) AND three > ?`, list(1, 2, 3)}, res)
	})

	t.Run(`placeholders in quotes and comments are ignored`, func(t *testing.T) {
		res := build(
			t,
			Dict{`one`: 1},
			Text{Text: `note <> '?' AND "col?" = ? /* ? */`, Value: `one`},
		)
		eq(t, Result{`note <> '?' AND "col?" = ? /* ? */`, list(1)}, res)
	})

	t.Run(`blank text`, func(t *testing.T) {
		eq(t, Result{}, build(t, nil, Text{Text: ` `}))
	})

	t.Run(`too few arguments`, func(t *testing.T) {
		errIs(t, buildErr(Dict{`one`: 1}, Text{Text: `a = ? AND b = ?`, Value: `one`}), ErrConfiguration)
	})

	t.Run(`too many arguments`, func(t *testing.T) {
		errIs(t, buildErr(Dict{`pair`: []int{1, 2}}, Text{Text: `a = ?`, Value: `pair`}), ErrConfiguration)
	})

	t.Run(`null value means no arguments`, func(t *testing.T) {
		errIs(t, buildErr(Dict{`none`: nil}, Text{Text: `a = ?`, Value: `none`}), ErrConfiguration)
	})

	t.Run(`named parameters`, func(t *testing.T) {
		errIs(t, buildErr(nil, Text{Text: `a = :one`}), ErrConfiguration)
	})

	t.Run(`ordinal parameters`, func(t *testing.T) {
		errIs(t, buildErr(Dict{`one`: 1}, Text{Text: `a = $1`, Value: `one`}), ErrConfiguration)
	})
}

func TestMatch(t *testing.T) {
	params := Dict{`name`: `bob`, `age`: 0, `flag`: true, `empty`: ``}

	test := func(match string, exp Result) {
		t.Helper()
		eq(t, exp, build(t, params, Equal{Field: `one`, Value: `name`, Match: match}))
	}

	test(``, Result{`one = ?`, list(`bob`)})
	test(`flag`, Result{`one = ?`, list(`bob`)})
	test(`name != ""`, Result{`one = ?`, list(`bob`)})
	test(`!flag`, Result{})
	test(`age`, Result{})
	test(`empty`, Result{})
	test(`age > 0 && flag`, Result{})

	t.Run(`skips evaluation of other attributes`, func(t *testing.T) {
		res := build(t, params, Equal{Field: `one`, Value: `missing`, Match: `false`})
		eq(t, Result{}, res)
	})

	t.Run(`invalid`, func(t *testing.T) {
		errIs(t, buildErr(params, Equal{Field: `one`, Value: `name`, Match: `missing`}), ErrExpression)
	})
}

func TestBuilder_sep(t *testing.T) {
	params := Dict{`one`: 1, `two`: 2}
	decls := []Decl{
		Equal{Field: `one`, Value: `one`},
		Equal{Field: `two`, Value: `two`},
		Equal{Field: `three`, Value: `two`, Prefix: `OR`},
	}

	eq(t, Result{`one = ? AND two = ? OR three = ?`, list(1, 2, 2)}, build(t, params, decls...))

	bui := Builder{Sep: `and`}
	res, err := bui.Build(params, decls...)
	noErr(t, err)
	eq(t, Result{`one = ? and two = ? OR three = ?`, list(1, 2, 2)}, res)
}

func TestBuilder_first_fragment_is_not_prefixed(t *testing.T) {
	res := build(
		t,
		Dict{`none`: nil, `one`: 1},
		In{Field: `skipped`, Value: `none`},
		Equal{Field: `one`, Value: `one`, Prefix: `OR`},
	)
	eq(t, Result{`one = ?`, list(1)}, res)
}

func TestBuilder_order_invariant(t *testing.T) {
	params := Dict{
		`name`:  `bob`,
		`ids`:   []int{4, 5, 6},
		`start`: 18,
		`end`:   65,
		`id`:    7,
		`pair`:  []string{`x`, `y`},
		`none`:  nil,
	}

	res := build(
		t,
		params,
		Equal{Field: `a`, Value: `name`},
		Like{Field: `b`, Value: `name`},
		In{Field: `c`, Value: `none`},
		Between{Field: `d`, Start: `start`, End: `end`},
		In{Field: `e`, Value: `ids`},
		Between{Field: `f`, End: `missing`},
		Text{Text: `(g = ? OR h = ?)`, Value: `pair`},
		In{Field: `i`, Value: `id`},
		Like{Field: `j`, Pattern: `%z`},
	)

	eq(
		t,
		`a = ? AND b LIKE ? AND d BETWEEN ? AND ? AND e IN (?, ?, ?) AND (g = ? OR h = ?) AND i IN (?) AND j LIKE ?`,
		res.Text,
	)
	eq(t, list(`bob`, `%bob%`, 18, 65, 4, 5, 6, `x`, `y`, 7, `%z`), res.Args)
	eq(t, strings.Count(res.Text, Placeholder), len(res.Args))
}

func TestBuilder_failed_declaration_leaves_accumulator_untouched(t *testing.T) {
	var bui Builder
	ctx := bui.Ctx(Dict{`one`: 1, `ids`: []int{1, 2}})

	noErr(t, bui.Append(ctx, Equal{Field: `one`, Value: `one`}))
	before := ctx.Acc.Result()

	fails := []Decl{
		Like{Field: `two`},
		Like{Field: `two`, Value: `one`, Pattern: `x`},
		Equal{Field: `two`, Value: `missing`},
		In{Field: `two`, Value: `ids +`},
		Text{Text: `two = ?`, Value: `ids`},
		nil,
	}

	for _, decl := range fails {
		err := bui.Append(ctx, decl)
		if err == nil {
			t.Fatalf(`expected %#v to fail`, decl)
		}
		eq(t, before, ctx.Acc.Result())
	}

	noErr(t, bui.Append(ctx, In{Field: `two`, Value: `ids`}))
	eq(t, Result{`one = ? AND two IN (?, ?)`, list(1, 1, 2)}, ctx.Acc.Result())
}

func TestBuilder_Build_aborts_on_error(t *testing.T) {
	var bui Builder
	res, err := bui.Build(
		Dict{`one`: 1},
		Equal{Field: `one`, Value: `one`},
		Equal{Field: `two`, Value: `missing`},
		Equal{Field: `three`, Value: `one`},
	)
	errIs(t, err, ErrExpression)
	eq(t, Result{}, res)
}

func TestBuilder_BuildOf(t *testing.T) {
	type Filter struct {
		Name  string
		Ids   []int `param:"ids"`
		Token string `param:"-"`
	}

	var bui Builder
	res, err := bui.BuildOf(
		&Filter{Name: `bob`, Ids: []int{1, 2}, Token: `secret`},
		Like{Field: `name`, Value: `Name`},
		In{Field: `id`, Value: `ids`},
	)
	noErr(t, err)
	eq(t, Result{`name LIKE ? AND id IN (?, ?)`, list(`%bob%`, 1, 2)}, res)

	_, err = bui.BuildOf(&Filter{}, Equal{Field: `token`, Value: `Token`})
	errIs(t, err, ErrExpression)

	_, err = bui.BuildOf(10, Equal{Field: `one`, Value: `1`})
	errIs(t, err, ErrInvalidInput)
}

type constEval struct{ val interface{} }

func (self constEval) Eval(string, Dict) (interface{}, error) { return self.val, nil }

func TestBuilder_custom_evaluator(t *testing.T) {
	bui := Builder{Eval: constEval{42}}
	res, err := bui.Build(nil, Equal{Field: `one`, Value: `anything at all`})
	noErr(t, err)
	eq(t, Result{`one = ?`, list(42)}, res)
}

func TestBuilder_logging(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	bui := Builder{Log: &log}

	_, err := bui.Build(
		Dict{`one`: 1, `none`: nil},
		Equal{Field: `one`, Value: `one`},
		In{Field: `two`, Value: `none`},
		Between{Field: `three`, Start: `missing`},
	)
	noErr(t, err)

	out := buf.String()
	for _, exp := range []string{
		`declaration emitted`,
		`declaration skipped`,
		`lenient evaluation treated as absent`,
		`pass complete`,
		`"pass":"`,
	} {
		if !strings.Contains(out, exp) {
			t.Fatalf(`expected log output to contain %q, got:\n%v`, exp, out)
		}
	}
}

func TestBuilder_parameters_in_verbatim_text(t *testing.T) {
	params := Dict{`one`: 1, `ids`: []int{1, 2}}

	test := func(bui Builder, decl Decl) {
		t.Helper()
		ctx := bui.Ctx(params)
		noErr(t, bui.Append(ctx, Equal{Field: `zero`, Value: `one`, Prefix: `AND`}))
		errIs(t, bui.Append(ctx, decl), ErrConfiguration)
		eq(t, Result{`zero = ?`, list(1)}, ctx.Acc.Result())
	}

	test(Builder{}, Equal{Field: `coalesce(one, ?)`, Value: `one`})
	test(Builder{}, Like{Field: `lower(?)`, Pattern: `a%`})
	test(Builder{}, Between{Field: `one + ?`, Start: `one`})
	test(Builder{}, In{Field: `one = $1 OR two`, Value: `ids`})
	test(Builder{}, Equal{Field: `one`, Value: `one`, Prefix: `AND ? =`})
	test(Builder{}, Text{Text: `one = 1`, Prefix: `OR :two`})
	test(Builder{Sep: `AND ?`}, In{Field: `two`, Value: `ids`})
	test(Builder{}, Equal{Field: `one`, Value: `one`, Match: `false`, Prefix: `? OR`})

	res := build(t, params, Equal{Field: `note <> '?' AND one`, Value: `one`})
	eq(t, Result{`note <> '?' AND one = ?`, list(1)}, res)
}
