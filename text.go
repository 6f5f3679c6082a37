package sqlcond

import (
	"strings"

	"github.com/mitranim/sqlp"
)

/*
Counts positional "?" placeholders in arbitrary SQL text, skipping quoted
strings, quoted identifiers and comments. Panics with `ErrConfiguration` if the
text contains named or ordinal parameters, which can't be mixed with
positional arguments appended by this package.
*/
func countPlaceholders(src string) (count int) {
	tokenizer := sqlp.Tokenizer{Source: src}

	for {
		node := tokenizer.Next()
		if node == nil {
			break
		}

		switch node := node.(type) {
		case sqlp.NodeText:
			count += strings.Count(string(node), Placeholder)

		case sqlp.NodeOrdinalParam:
			panic(errConfiguration(
				`scanning raw text`,
				errf(`unexpected ordinal parameter $%d in %q: only %q is supported`, int(node), src, Placeholder),
			))

		case sqlp.NodeNamedParam:
			panic(errConfiguration(
				`scanning raw text`,
				errf(`unexpected named parameter :%s in %q: only %q is supported`, string(node), src, Placeholder),
			))
		}
	}
	return
}
