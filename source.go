package sqlcond

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Kinds of declarations accepted by `Source.Kind`.
const (
	KindEqual   = `equal`
	KindLike    = `like`
	KindBetween = `between`
	KindIn      = `in`
	KindText    = `text`
)

/*
Flat, decodable form of a declaration, for template layers and files that
describe conditions as data. Decode from JSON or YAML, then call
`Source.Decl` to validate and convert it:

	{"kind": "like", "field": "u.name", "value": "name", "mode": "starts"}
	{"kind": "between", "field": "u.age", "start": "min", "end": "max"}
	{"kind": "text", "text": "u.deleted_at IS NULL"}
*/
type Source struct {
	Kind    string `json:"kind"    yaml:"kind"    validate:"required,oneof=equal like between in text"`
	Field   string `json:"field"   yaml:"field"   validate:"required_unless=Kind text"`
	Op      string `json:"op"      yaml:"op"      validate:"omitempty,oneof== <> > >= < <="`
	Value   string `json:"value"   yaml:"value"`
	Pattern string `json:"pattern" yaml:"pattern"`
	Start   string `json:"start"   yaml:"start"`
	End     string `json:"end"     yaml:"end"`
	Text    string `json:"text"    yaml:"text"    validate:"required_if=Kind text"`
	Match   string `json:"match"   yaml:"match"`
	Prefix  string `json:"prefix"  yaml:"prefix"  validate:"omitempty,oneof=AND OR and or"`
	Not     bool   `json:"not"     yaml:"not"`
	Mode    string `json:"mode"    yaml:"mode"    validate:"omitempty,oneof=contains starts ends"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

/*
Validates the source and converts it into the corresponding `Decl`. Structural
problems, such as an unknown kind or a missing field, are reported as
`ErrInvalidInput`. Rules that depend on evaluation, such as the exclusivity of
"value" and "pattern" for "like", are left to `Builder` and reported as
`ErrConfiguration` during the pass.
*/
func (self Source) Decl() (Decl, error) {
	err := getValidator().Struct(self)
	if err != nil {
		return nil, errInvalidInput(`validating declaration source`, err)
	}

	switch self.Kind {
	case KindEqual:
		return Equal{
			Field:  self.Field,
			Op:     self.Op,
			Value:  self.Value,
			Match:  self.Match,
			Prefix: self.Prefix,
		}, nil

	case KindLike:
		return Like{
			Field:   self.Field,
			Value:   self.Value,
			Pattern: self.Pattern,
			Mode:    likeModes[self.Mode],
			Not:     self.Not,
			Match:   self.Match,
			Prefix:  self.Prefix,
		}, nil

	case KindBetween:
		return Between{
			Field:  self.Field,
			Start:  self.Start,
			End:    self.End,
			Match:  self.Match,
			Prefix: self.Prefix,
		}, nil

	case KindIn:
		return In{
			Field:  self.Field,
			Value:  self.Value,
			Not:    self.Not,
			Match:  self.Match,
			Prefix: self.Prefix,
		}, nil

	case KindText:
		return Text{
			Text:   self.Text,
			Value:  self.Value,
			Match:  self.Match,
			Prefix: self.Prefix,
		}, nil

	default:
		return nil, errInternal(`converting declaration source`, errf(`unhandled kind %q`, self.Kind))
	}
}

var likeModes = map[string]LikeMode{
	``:         LikeContains,
	`contains`: LikeContains,
	`starts`:   LikeStarts,
	`ends`:     LikeEnds,
}

// Sequence of sources, typically decoded from one file.
type Sources []Source

// Converts every source via `Source.Decl`, stopping at the first error.
func (self Sources) Decls() ([]Decl, error) {
	out := make([]Decl, 0, len(self))
	for ind, src := range self {
		decl, err := src.Decl()
		if err != nil {
			var tar Err
			if errors.As(err, &tar) {
				tar.While += fmt.Sprintf(` at index %d`, ind)
				return nil, tar
			}
			return nil, err
		}
		out = append(out, decl)
	}
	return out, nil
}
