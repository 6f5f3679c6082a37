package sqlcond

import (
	"encoding"
	"fmt"
	r "reflect"
	"strconv"
)

/*
Optional interface for values that may represent SQL null without being Go
nil. When implemented, `.IsNull` decides whether `In` and `Equal` treat the
value as absent.
*/
type Nullable interface{ IsNull() bool }

/*
Normalizes an evaluated value into an ordered sequence of SQL arguments, used
by `In` and `Text`:

	* Nil (see `Nullable`) → nil.
	* `[]any` → as-is.
	* Any other slice or array, except byte slices → elements in index order.
	* Anything else → one-element sequence.

Pointers to slices and arrays are dereferenced. Byte slices are treated as
scalars because drivers bind them as blobs.
*/
func Seq(src any) []any {
	if isNull(src) {
		return nil
	}

	switch src := src.(type) {
	case []any:
		return src
	case []byte:
		return []any{src}
	}

	val := valueOf(src)
	switch val.Kind() {
	case r.Slice, r.Array:
		if val.Type().ConvertibleTo(typeBytes) {
			return []any{src}
		}
		out := make([]any, val.Len())
		for ind := range counter(val.Len()) {
			out[ind] = val.Index(ind).Interface()
		}
		return out
	default:
		return []any{src}
	}
}

/*
Converts an evaluated value into text for building a "like" pattern. Returns
errors separately instead of encoding them into the output. Supports only
"intentionally" encodable types, in this order of priority:

	* `fmt.Stringer`
	* `encoding.TextMarshaler`
	* Built-in primitive types. Floats are encoded without the scientific
	  notation.
	* Aliases of `[]byte`.

Nil input = "" output.
*/
func String(src any) (string, error) {
	if src == nil {
		return ``, nil
	}

	stringer, _ := src.(fmt.Stringer)
	if stringer != nil {
		return stringer.String(), nil
	}

	marshaler, _ := src.(encoding.TextMarshaler)
	if marshaler != nil {
		chunk, err := marshaler.MarshalText()
		if err != nil {
			return ``, errInternal(`generating string representation`, err)
		}
		return string(chunk), nil
	}

	typ := typeOf(src)
	val := valueOf(src)
	if !val.IsValid() {
		return ``, nil
	}

	switch typ.Kind() {
	case r.Int8, r.Int16, r.Int32, r.Int64, r.Int:
		return strconv.FormatInt(val.Int(), 10), nil

	case r.Uint8, r.Uint16, r.Uint32, r.Uint64, r.Uint:
		return strconv.FormatUint(val.Uint(), 10), nil

	case r.Float32, r.Float64:
		return strconv.FormatFloat(val.Float(), 'f', -1, 64), nil

	case r.Bool:
		return strconv.FormatBool(val.Bool()), nil

	case r.String:
		return val.String(), nil

	default:
		if typ.ConvertibleTo(typeBytes) {
			return string(val.Bytes()), nil
		}
		return ``, errInvalidInput(
			`generating string representation`,
			errf(`unsupported type %v of value %#v`, typ, src),
		)
	}
}

/*
Truthiness of a "match" expression result: nil and false are falsy, numbers
are truthy when non-zero, strings and sequences when non-empty. Everything else
is truthy.
*/
func truthy(src any) bool {
	if isNil(src) {
		return false
	}

	val := valueOf(src)
	switch val.Kind() {
	case r.Bool:
		return val.Bool()
	case r.Int8, r.Int16, r.Int32, r.Int64, r.Int:
		return val.Int() != 0
	case r.Uint8, r.Uint16, r.Uint32, r.Uint64, r.Uint, r.Uintptr:
		return val.Uint() != 0
	case r.Float32, r.Float64:
		return val.Float() != 0
	case r.String, r.Slice, r.Array, r.Map:
		return val.Len() > 0
	default:
		return true
	}
}
