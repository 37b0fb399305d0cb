package lex

// mergeable holds every multi-character punctuator (plus the ellipsis)
// that could be formed accidentally across a token boundary.
var mergeable = map[string]bool{
	">>=": true, "<<=": true, "->*": true, "...": true,
	"::": true, "->": true, "++": true, "--": true, "<<": true, ">>": true,
	"&&": true, "||": true, "==": true, "!=": true, "<=": true, ">=": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true, "&=": true,
	"|=": true, "^=": true, "##": true,
}

// NeedsSeparator reports whether writing tokens a and b with no
// intervening whitespace would change the token stream produced by
// re-tokenizing the output.
//
// The predicate is pure and depends only on the last one or two bytes of
// a and the first one or two bytes of b. It returns true when adjacency
// would:
//
//  1. merge two identifier/number tokens,
//  2. open or close a comment (//, /*, */),
//  3. form a multi-character punctuator or an ellipsis across the boundary,
//  4. attach a user-defined-literal suffix to a literal or number, or
//  5. splice a dot onto a digit (floating-point adjacency).
//
// Empty operands never need a separator: NeedsSeparator("", x) and
// NeedsSeparator(x, "") are false for all x.
func NeedsSeparator(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	ca := a[len(a)-1]
	cb := b[0]

	// Identifier or number merge.
	if isIdentChar(ca) && isIdentChar(cb) {
		return true
	}

	// Comment hazards: //, /*, and a stray */ closing a synthesized block.
	if (ca == '/' && cb == '/') || (ca == '/' && cb == '*') || (ca == '*' && cb == '/') {
		return true
	}

	// Punctuator merges across the boundary. Three windows cover every
	// multi-character punctuator: aa+b, a+b, and a+bb.
	if len(a) >= 2 && mergeable[a[len(a)-2:]+string(cb)] {
		return true
	}
	if mergeable[string(ca)+string(cb)] {
		return true
	}
	if len(b) >= 2 && mergeable[string(ca)+b[:2]] {
		return true
	}

	// Ellipsis split as '.' + '..' or '..' + '.'.
	if ca == '.' && len(b) >= 2 && b[0] == '.' && b[1] == '.' {
		return true
	}
	if len(a) >= 2 && a[len(a)-2] == '.' && ca == '.' && cb == '.' {
		return true
	}

	// A literal or number followed by a letter would read as a
	// user-defined literal suffix.
	if (ca == '"' || ca == '\'' || isDigit(ca)) && (isAlpha(cb) || cb == '_') {
		return true
	}

	// Floating-point adjacency: a dot next to a digit in either direction.
	if (ca == '.' && isDigit(cb)) || (isDigit(ca) && cb == '.') {
		return true
	}

	return false
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool { return isAlpha(c) || c == '_' }

func isIdentChar(c byte) bool { return isAlpha(c) || isDigit(c) || c == '_' }

func isNumberChar(c byte) bool {
	return isIdentChar(c) || c == '.' || c == '\''
}
