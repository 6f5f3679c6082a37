package sqlcond

import (
	"database/sql/driver"
	r "reflect"
	"strings"
	"unicode"
	"unsafe"
)

var (
	typeBytes = r.TypeOf((*[]byte)(nil)).Elem()

	charsetSpace      = new(charset).addStr(" \t\v")
	charsetNewline    = new(charset).addStr("\r\n")
	charsetWhitespace = new(charset).addSet(charsetSpace).addSet(charsetNewline)
	charsetDelimStart = new(charset).addSet(charsetWhitespace).addStr(`([{.`)
	charsetDelimEnd   = new(charset).addSet(charsetWhitespace).addStr(`,}])`)
)

type charset [256]bool

func (self *charset) has(val byte) bool { return self[val] }

func (self *charset) addStr(vals string) *charset {
	for _, val := range vals {
		self[val] = true
	}
	return self
}

func (self *charset) addSet(vals *charset) *charset {
	for ind, val := range vals {
		if val {
			self[ind] = true
		}
	}
	return self
}

/*
Allocation-free conversion. Reinterprets a byte slice as a string. Borrowed from
the standard library. Reasonably safe. Should not be used when the underlying
byte array is volatile.
*/
func bytesToMutableString(bytes []byte) string {
	return *(*string)(unsafe.Pointer(&bytes))
}

func maybeAppendSpace(val []byte) []byte {
	if hasDelimSuffix(bytesToMutableString(val)) {
		return val
	}
	return append(val, ` `...)
}

func appendMaybeSpaced(text []byte, suffix string) []byte {
	if !hasDelimSuffix(bytesToMutableString(text)) && !hasDelimPrefix(suffix) {
		text = append(text, ` `...)
	}
	text = append(text, suffix...)
	return text
}

func hasDelimPrefix(text string) bool {
	return len(text) == 0 || charsetDelimEnd.has(text[0])
}

func hasDelimSuffix(text string) bool {
	return len(text) == 0 || charsetDelimStart.has(text[len(text)-1])
}

func isBlank(val string) bool {
	return strings.TrimFunc(val, unicode.IsSpace) == ``
}

func try(err error) {
	if err != nil {
		panic(err)
	}
}

func try1[A any](val A, err error) A {
	try(err)
	return val
}

// Must be deferred.
func rec(ptr *error) {
	val := recover()
	if val == nil {
		return
	}

	err, _ := val.(error)
	if err != nil {
		*ptr = err
		return
	}

	panic(val)
}

/*
True if the value would be bound as SQL null: nil, a nil pointer or other nil
reference, a `Nullable` reporting null, or a `driver.Valuer` producing nil.
*/
func isNull(val any) bool {
	if isNil(val) {
		return true
	}

	nullable, _ := val.(Nullable)
	if nullable != nil {
		return nullable.IsNull()
	}

	valuer, _ := val.(driver.Valuer)
	if valuer != nil {
		out, err := valuer.Value()
		return err == nil && out == nil
	}

	return false
}

/*
Same as `isNull` but considers only Go nils. Used for truthiness, where an
explicitly provided `sql.NullString{}` is a value like any other.
*/
func isNil(val any) bool {
	return val == nil || isValueNil(r.ValueOf(val))
}

func isValueNil(val r.Value) bool {
	return !val.IsValid() || isNilable(val.Kind()) && val.IsNil()
}

func isNilable(kind r.Kind) bool {
	switch kind {
	case r.Chan, r.Func, r.Interface, r.Map, r.Ptr, r.Slice:
		return true
	default:
		return false
	}
}

func isPublic(pkgPath string) bool { return pkgPath == `` }

func valueDeref(val r.Value) r.Value {
	for val.Kind() == r.Ptr {
		if val.IsNil() {
			return r.Value{}
		}
		val = val.Elem()
	}
	return val
}

func typeDeref(typ r.Type) r.Type {
	for typ != nil && typ.Kind() == r.Ptr {
		typ = typ.Elem()
	}
	return typ
}

func typeOf(val any) r.Type {
	return typeDeref(r.TypeOf(val))
}

func valueOf(val any) r.Value {
	return valueDeref(r.ValueOf(val))
}

func counter(val int) []struct{} { return make([]struct{}, val) }
