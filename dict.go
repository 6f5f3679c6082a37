package sqlcond

import (
	r "reflect"

	"github.com/mitranim/refut"
)

// Struct tag used by `DictOf` to rename or skip fields.
const TagNameParam = `param`

/*
Parameter namespace of one build pass: maps names used in expressions to
arbitrary values. Must not be mutated while a pass is running.
*/
type Dict map[string]any

// True if there are no parameters.
func (self Dict) IsEmpty() bool { return len(self) == 0 }

/*
Converts the input into a `Dict`:

	* Nil → nil.
	* `Dict` or `map[string]any` → as-is.
	* Struct or struct pointer → one entry per exported field, including fields
	  of embedded structs. The key is the field name, or the name in the
	  "param" tag. Fields tagged `param:"-"` are skipped.

Other inputs cause a panic with `ErrInvalidInput`.
*/
func DictOf(src any) Dict {
	switch src := src.(type) {
	case nil:
		return nil
	case Dict:
		return src
	case map[string]any:
		return Dict(src)
	}

	val := valueOf(src)
	if !val.IsValid() {
		return nil
	}

	typ := refut.RtypeDeref(val.Type())
	if typ.Kind() != r.Struct {
		panic(errInvalidInput(
			`converting parameters to dict`,
			errf(`expected struct or map[string]any, got %v`, typ),
		))
	}

	out := Dict{}
	try(refut.TraverseStructRval(val, func(val r.Value, field r.StructField, _ []int) error {
		if !isPublic(field.PkgPath) {
			return nil
		}
		name := fieldParamName(field)
		if name != `` {
			out[name] = val.Interface()
		}
		return nil
	}))
	return out
}

func fieldParamName(field r.StructField) string {
	tag, ok := field.Tag.Lookup(TagNameParam)
	if ok {
		return refut.TagIdent(tag)
	}
	return field.Name
}
