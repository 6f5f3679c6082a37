package sqlcond

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

/*
Error codes. You probably shouldn't use this directly; instead, use the `Err`
variables with `errors.Is`.
*/
type ErrCode string

const (
	ErrCodeUnknown       ErrCode = ""
	ErrCodeExpression    ErrCode = "Expression"
	ErrCodeConfiguration ErrCode = "Configuration"
	ErrCodeInvalidInput  ErrCode = "InvalidInput"
	ErrCodeInternal      ErrCode = "Internal"
)

/*
Use blank error variables to detect error types:

	if errors.Is(err, sqlcond.ErrExpression) {
		// Handle specific error.
	}

Note that errors returned by this package can't be compared via `==` because
they may include additional details about the circumstances. When compared by
`errors.Is`, they compare `.Cause` and fall back on `.Code`.

`ErrExpression` means that a strictly evaluated expression was blank,
malformed, referenced an unknown name, or failed at runtime.
`ErrConfiguration` means that a declaration's attributes violate the rules of
its kind, for example both `Like.Value` and `Like.Pattern` are set.
*/
var (
	ErrExpression    Err = Err{Code: ErrCodeExpression, Cause: errors.New(`expression error`)}
	ErrConfiguration Err = Err{Code: ErrCodeConfiguration, Cause: errors.New(`configuration error`)}
	ErrInvalidInput  Err = Err{Code: ErrCodeInvalidInput, Cause: errors.New(`invalid input`)}
	ErrInternal      Err = Err{Code: ErrCodeInternal, Cause: errors.New(`internal error`)}
)

// Type of errors returned by this package.
type Err struct {
	Code  ErrCode
	While string
	Cause error
}

// Implement `error`.
func (self Err) Error() string {
	if self == (Err{}) {
		return ``
	}
	msg := self.head()
	if self.Cause != nil {
		msg += `: ` + self.Cause.Error()
	}
	return msg
}

/*
Implement `fmt.Formatter`. The "%+v" verb is forwarded to the cause, which
prints a stack trace when the cause was created by "github.com/pkg/errors".
*/
func (self Err) Format(out fmt.State, verb rune) {
	if verb == 'v' && out.Flag('+') && self.Cause != nil {
		_, _ = io.WriteString(out, self.head())
		_, _ = fmt.Fprintf(out, `: %+v`, self.Cause)
		return
	}
	_, _ = io.WriteString(out, self.Error())
}

// Implement a hidden interface in "errors".
func (self Err) Is(other error) bool {
	if self.Cause != nil && errors.Is(self.Cause, other) {
		return true
	}
	err, ok := other.(Err)
	return ok && err.Code != ErrCodeUnknown && err.Code == self.Code
}

// Implement a hidden interface in "errors".
func (self Err) Unwrap() error {
	return self.Cause
}

func (self Err) head() string {
	msg := `[sqlcond]`
	if self.Code != ErrCodeUnknown {
		msg += fmt.Sprintf(` %s`, self.Code)
	} else {
		msg += ` error`
	}
	if self.While != `` {
		msg += fmt.Sprintf(` while %v`, self.While)
	}
	return msg
}

func (self Err) while(while string) Err {
	self.While = while
	return self
}

func (self Err) because(cause error) Err {
	self.Cause = cause
	return self
}

func errExpression(src string, cause error) Err {
	return ErrExpression.while(fmt.Sprintf(`evaluating expression %q`, src)).because(cause)
}

func errConfiguration(while string, cause error) Err {
	return ErrConfiguration.while(while).because(cause)
}

func errInvalidInput(while string, cause error) Err {
	return ErrInvalidInput.while(while).because(cause)
}

func errInternal(while string, cause error) Err {
	return ErrInternal.while(while).because(cause)
}

func errf(pattern string, args ...any) error {
	return errors.Errorf(pattern, args...)
}
