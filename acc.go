package sqlcond

const (
	// Positional placeholder emitted for every argument.
	Placeholder = `?`

	// Default word joining consecutive fragments. See `Builder.Sep`.
	DefaultSep = `AND`
)

/*
Short for "accumulator". Order-preserving buffer of SQL text and arguments
built by one build pass. Every fragment method appends its text and its
arguments together, so the count of placeholders in `.Text` always equals
`len(.Args)`, and the N-th placeholder corresponds to the N-th argument.

Fragments are joined with the given prefix (such as "AND") if the accumulator
already has text; the first fragment is never prefixed. An accumulator must not
be shared between concurrent passes.
*/
type Acc struct {
	Text []byte
	Args []any
}

// Final output of a build pass: SQL text with positional placeholders and the
// arguments to bind to them, in order.
type Result struct {
	Text string
	Args []any
}

// Shortcut for `self.Text, self.Args`. Go database drivers tend to require
// `string, []any` as inputs for queries and statements.
func (self Result) Reify() (string, []any) { return self.Text, self.Args }

// Implement `fmt.Stringer` for debug purposes.
func (self Result) String() string { return self.Text }

// True if the pass produced no fragments.
func (self Result) IsEmpty() bool { return self.Text == `` && len(self.Args) == 0 }

// Returns a copy of the current state as `Result`.
func (self Acc) Result() Result {
	var args []any
	if len(self.Args) > 0 {
		args = make([]any, len(self.Args))
		copy(args, self.Args)
	}
	return Result{string(self.Text), args}
}

// Shortcut for `self.String(), self.Args`.
func (self Acc) Reify() (string, []any) { return self.String(), self.Args }

// Returns inner text as a string, performing a free cast.
func (self Acc) String() string { return bytesToMutableString(self.Text) }

// Number of arguments appended so far.
func (self Acc) Len() int { return len(self.Args) }

// Adds a space if the preceding text doesn't already end with a delimiter.
func (self *Acc) Space() { self.Text = maybeAppendSpace(self.Text) }

// Appends the provided string, delimiting it from the previous text with a
// space if necessary.
func (self *Acc) Str(val string) {
	if val != `` {
		self.Text = appendMaybeSpaced(self.Text, val)
	}
}

/*
Appends an argument to `.Args` and a corresponding placeholder to `.Text`. This
is the only way fragment methods add arguments.
*/
func (self *Acc) Arg(val any) {
	self.Args = append(self.Args, val)
	self.Space()
	self.Text = append(self.Text, Placeholder...)
}

// Appends the prefix if there's preceding text. Called at the start of every
// fragment.
func (self *Acc) Join(prefix string) {
	if len(self.Text) > 0 {
		self.Str(prefix)
	}
}

// Appends `<field> <op> ?`.
func (self *Acc) Equal(prefix, field, op string, val any) {
	self.Join(prefix)
	self.Str(field)
	self.Str(op)
	self.Arg(val)
}

// Appends `<field> IS NULL` or `<field> IS NOT NULL`, without arguments.
func (self *Acc) IsNull(prefix, field string, not bool) {
	self.Join(prefix)
	self.Str(field)
	if not {
		self.Str(`IS NOT NULL`)
	} else {
		self.Str(`IS NULL`)
	}
}

/*
Appends `<field> LIKE ?` with the given value as-is. The caller is responsible
for wrapping the value into a pattern. See `Like.Mode`.
*/
func (self *Acc) Like(prefix, field string, not bool, val any) {
	self.Join(prefix)
	self.Str(field)
	self.Str(likeOp(not))
	self.Arg(val)
}

/*
Appends `<field> LIKE ?` using the literal pattern text as the argument,
without adding wildcards. Textually identical to `(*Acc).Like`; exists to keep
"match by pattern" distinct from "match by value" at call sites.
*/
func (self *Acc) LikePattern(prefix, field string, not bool, pattern string) {
	self.Like(prefix, field, not, pattern)
}

/*
Appends a range condition depending on which bounds are non-nil:

	both  → `<field> BETWEEN ? AND ?` with args start, end
	start → `<field> >= ?`
	end   → `<field> <= ?`
	none  → nothing
*/
func (self *Acc) Between(prefix, field string, start, end any) {
	switch {
	case start != nil && end != nil:
		self.Join(prefix)
		self.Str(field)
		self.Str(`BETWEEN`)
		self.Arg(start)
		self.Str(`AND`)
		self.Arg(end)

	case start != nil:
		self.Equal(prefix, field, `>=`, start)

	case end != nil:
		self.Equal(prefix, field, `<=`, end)
	}
}

/*
Appends `<field> IN (?, ?, ...)` with one placeholder per value, in order. An
empty list can't be expressed as "in ()", which is invalid SQL, so it becomes a
constant predicate with the same meaning: `1 = 0` for "in" (nothing matches)
and `1 = 1` for "not in" (everything matches).
*/
func (self *Acc) In(prefix, field string, not bool, vals []any) {
	self.Join(prefix)

	if len(vals) == 0 {
		if not {
			self.Str(`1 = 1`)
		} else {
			self.Str(`1 = 0`)
		}
		return
	}

	self.Str(field)
	if not {
		self.Str(`NOT IN`)
	} else {
		self.Str(`IN`)
	}
	self.Str(`(`)
	for ind, val := range vals {
		if ind > 0 {
			self.Str(`,`)
		}
		self.Arg(val)
	}
	self.Str(`)`)
}

/*
Appends arbitrary text verbatim, followed by the given arguments in order. The
caller must ensure that the text has exactly one placeholder per argument; see
`Text` which validates this before calling.
*/
func (self *Acc) Raw(prefix, text string, args []any) {
	self.Join(prefix)
	self.Str(text)
	self.Args = append(self.Args, args...)
}

func likeOp(not bool) string {
	if not {
		return `NOT LIKE`
	}
	return `LIKE`
}
