package sqlcond

/*
Declaration of one query condition, as discovered by a template layer. This is
a closed set: the only implementations are `Equal`, `Like`, `Between`, `In` and
`Text`. `Builder` dispatches over them exhaustively.

Every declaration supports two optional attributes:

	* Match: expression evaluated strictly before anything else; if the result
	  is falsy (nil, false, zero, empty), the declaration emits nothing.
	  Blank means "always".

	* Prefix: word joining this fragment to the preceding text, such as "AND"
	  or "OR". Blank means `Builder.Sep`.

Fields are SQL text and are emitted verbatim. They, along with prefixes, must
not contain "?" placeholders or other parameters, since no arguments are bound
for them; violations fail with `ErrConfiguration`. Value-like attributes are
expressions evaluated against the pass's `Dict`.
*/
type Decl interface{ opts() (match, prefix, field string) }

// Comparison operators supported by `Equal`.
const (
	OpEq  = `=`
	OpNeq = `<>`
	OpGt  = `>`
	OpGte = `>=`
	OpLt  = `<`
	OpLte = `<=`
)

var ops = map[string]bool{OpEq: true, OpNeq: true, OpGt: true, OpGte: true, OpLt: true, OpLte: true}

/*
Comparison of a field with a strictly evaluated value: `<field> <op> ?`.
`.Op` defaults to "=". Evaluation failure aborts the pass. A null value is
handled by `Builder.Null`.
*/
type Equal struct {
	Field  string
	Op     string
	Value  string
	Match  string
	Prefix string
}

func (self Equal) opts() (string, string, string) { return self.Match, self.Prefix, self.Field }

// Wildcard placement for `Like.Value`.
type LikeMode byte

const (
	LikeContains LikeMode = iota // %v%
	LikeStarts                   // v%
	LikeEnds                     // %v
)

// Implement `fmt.Stringer` for debug purposes.
func (self LikeMode) String() string {
	switch self {
	case LikeStarts:
		return `starts`
	case LikeEnds:
		return `ends`
	default:
		return `contains`
	}
}

func (self LikeMode) wrap(val string) string {
	switch self {
	case LikeStarts:
		return val + `%`
	case LikeEnds:
		return `%` + val
	default:
		return `%` + val + `%`
	}
}

/*
Fuzzy match: `<field> LIKE ?`. Exactly one of `.Value` and `.Pattern` must be
non-blank, otherwise the pass fails with `ErrConfiguration`.

	* `.Value` is an expression. Its result is converted to text via `String`
	  and wrapped in wildcards according to `.Mode`. Special characters in the
	  value are not escaped. A null result emits nothing, like a null `In`:
	  wrapping null in wildcards would match the literal text "%<nil>%"
	  rather than express "no filter".

	* `.Pattern` is literal pattern text, bound verbatim without wildcards.
*/
type Like struct {
	Field   string
	Value   string
	Pattern string
	Mode    LikeMode
	Not     bool
	Match   string
	Prefix  string
}

func (self Like) opts() (string, string, string) { return self.Match, self.Prefix, self.Field }

/*
Range condition over leniently evaluated bounds. Emits `BETWEEN ? AND ?`,
`>= ?` or `<= ?` depending on which bounds are present; emits nothing when
both are absent. A bound is absent when it's blank, fails to evaluate, or
evaluates to null.
*/
type Between struct {
	Field  string
	Start  string
	End    string
	Match  string
	Prefix string
}

func (self Between) opts() (string, string, string) { return self.Match, self.Prefix, self.Field }

/*
Membership condition: `<field> IN (?, ...)`. `.Value` is evaluated strictly
and normalized via `Seq`. A null result emits nothing.
*/
type In struct {
	Field  string
	Value  string
	Not    bool
	Match  string
	Prefix string
}

func (self In) opts() (string, string, string) { return self.Match, self.Prefix, self.Field }

/*
Arbitrary SQL text with positional arguments. `.Value` is an optional
expression evaluated strictly and normalized via `Seq`; blank or null means no
arguments. The number of "?" placeholders in `.Text`, outside of quotes and
comments, must equal the number of arguments; named (":name") and ordinal
("$1") parameters aren't supported. Violations fail with `ErrConfiguration`.
*/
type Text struct {
	Text   string
	Value  string
	Match  string
	Prefix string
}

func (self Text) opts() (string, string, string) { return self.Match, self.Prefix, `` }

/*
How `Equal` treats a null value. The zero value is `NullIsNull`.

	* NullIsNull: "=" becomes `IS NULL`, "<>" becomes `IS NOT NULL`; ordering
	  operators, which are never true for null, emit nothing.
	* NullSkip: emit nothing.
	* NullBind: bind null as a regular argument. Note that `<field> = NULL` is
	  never true in SQL.
*/
type NullPolicy byte

const (
	NullIsNull NullPolicy = iota
	NullSkip
	NullBind
)

// Implement `fmt.Stringer` for debug purposes.
func (self NullPolicy) String() string {
	switch self {
	case NullSkip:
		return `skip`
	case NullBind:
		return `bind`
	default:
		return `is_null`
	}
}

// Parses from a string, which must be empty, "is_null", "skip" or "bind".
func (self *NullPolicy) Parse(src string) error {
	switch src {
	case ``, `is_null`:
		*self = NullIsNull
	case `skip`:
		*self = NullSkip
	case `bind`:
		*self = NullBind
	default:
		return errInvalidInput(`parsing null policy`, errf(`unrecognized null policy %q`, src))
	}
	return nil
}

// Implement `encoding.TextUnmarshaler`.
func (self *NullPolicy) UnmarshalText(src []byte) error {
	return self.Parse(string(src))
}
