package sqlcond

import (
	"errors"
	"reflect"
	"testing"
)

type (
	B  = testing.B
	T  = testing.T
	TB = testing.TB
)

func eq(t TB, expected interface{}, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected:\n%#v\nactual:\n%#v", expected, actual)
	}
}

func errIs(t TB, err error, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected error %v, got %#v", target, err)
	}
}

func noErr(t TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func list(vals ...interface{}) []interface{} { return vals }

func build(t TB, params Dict, decls ...Decl) Result {
	t.Helper()
	var bui Builder
	res, err := bui.Build(params, decls...)
	noErr(t, err)
	return res
}

func buildErr(params Dict, decls ...Decl) error {
	var bui Builder
	_, err := bui.Build(params, decls...)
	return err
}

type nullable bool

func (self nullable) IsNull() bool { return bool(self) }
