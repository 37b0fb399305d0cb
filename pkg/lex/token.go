package lex

// punctuators lists the multi-character punctuators recognized by the
// tokenizer, longest first so that greedy matching is longest-match.
var punctuators = []string{
	">>=", "<<=", "->*",
	"::", "->", "++", "--", "<<", ">>", "&&", "||",
	"==", "!=", "<=", ">=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"##",
}

// Tokenize splits comment-free source code into an ordered sequence of
// lexeme strings. Whitespace separates tokens and is discarded.
//
// Recognition priority, highest first:
//
//  1. Raw string literals, with optional u8/u/U/L prefix
//  2. String literals, with optional u8/u/U/L prefix
//  3. Character literals, with optional u/U/L prefix
//  4. Identifiers: [A-Za-z_][A-Za-z0-9_]*
//  5. Numbers: a digit followed by any run of [A-Za-z0-9._']
//  6. Multi-character punctuators, longest match first
//  7. Any other single byte
//
// Tokenize never fails; bytes that fit no category become single-byte
// tokens. Comments must already be removed (see [Strip]); a stray /* in
// the input would be read as the tokens '/' and '*'.
func Tokenize(code string) []string {
	var toks []string
	n := len(code)

	for i := 0; i < n; {
		c := code[i]

		if isSpace(c) {
			i++
			continue
		}

		if j, ok := scanPrefixedRaw(code, i); ok {
			toks = append(toks, code[i:j])
			i = j
			continue
		}
		if j, ok := scanRawString(code, i); ok {
			toks = append(toks, code[i:j])
			i = j
			continue
		}

		if j, ok := scanString(code, i); ok {
			toks = append(toks, code[i:j])
			i = j
			continue
		}

		if j, ok := scanCharLiteral(code, i); ok {
			toks = append(toks, code[i:j])
			i = j
			continue
		}

		if isIdentStart(c) {
			j := i + 1
			for j < n && isIdentChar(code[j]) {
				j++
			}
			toks = append(toks, code[i:j])
			i = j
			continue
		}

		if isDigit(c) {
			j := i + 1
			for j < n && isNumberChar(code[j]) {
				j++
			}
			toks = append(toks, code[i:j])
			i = j
			continue
		}

		if j := matchPunctuator(code, i); j > i {
			toks = append(toks, code[i:j])
			i = j
			continue
		}

		toks = append(toks, code[i:i+1])
		i++
	}
	return toks
}

// scanRawString scans a raw string literal starting at i (which must be
// the R of R"delim(...)delim") and returns the end index. An unterminated
// raw string extends to the end of input.
func scanRawString(code string, i int) (int, bool) {
	if !(i+1 < len(code) && code[i] == 'R' && code[i+1] == '"') {
		return 0, false
	}
	delim, body, ok := scanRawDelim(code, i+1)
	if !ok {
		return 0, false
	}
	for pos := body; pos < len(code); pos++ {
		if code[pos] == ')' && hasRawCloser(code, pos, delim) {
			return pos + 2 + len(delim), true
		}
	}
	return len(code), true
}

// scanPrefixedRaw scans a raw string literal with a u8, u, U, or L prefix.
func scanPrefixedRaw(code string, i int) (int, bool) {
	for _, pfx := range []string{"u8", "u", "U", "L"} {
		if len(code)-i > len(pfx) && code[i:i+len(pfx)] == pfx {
			if j, ok := scanRawString(code, i+len(pfx)); ok {
				return j, true
			}
		}
	}
	return 0, false
}

// scanString scans a "..." literal with optional u8/u/U/L prefix,
// honoring backslash escapes. Newlines do not terminate the literal; an
// unterminated string extends to the end of input.
func scanString(code string, i int) (int, bool) {
	n := len(code)
	q := i
	if code[q] == 'u' && q+1 < n && code[q+1] == '8' {
		q += 2
	} else if (code[q] == 'u' || code[q] == 'U' || code[q] == 'L') && q+1 < n && code[q+1] == '"' {
		q++
	}
	if q >= n || code[q] != '"' {
		return 0, false
	}
	j := q + 1
	esc := false
	for j < n {
		ch := code[j]
		j++
		if esc {
			esc = false
			continue
		}
		if ch == '\\' {
			esc = true
			continue
		}
		if ch == '"' {
			break
		}
	}
	return j, true
}

// scanCharLiteral scans a '...' literal with optional u/U/L prefix.
func scanCharLiteral(code string, i int) (int, bool) {
	n := len(code)
	q := i
	if (code[q] == 'u' || code[q] == 'U' || code[q] == 'L') && q+1 < n && code[q+1] == '\'' {
		q++
	}
	if q >= n || code[q] != '\'' {
		return 0, false
	}
	j := q + 1
	esc := false
	for j < n {
		ch := code[j]
		j++
		if esc {
			esc = false
			continue
		}
		if ch == '\\' {
			esc = true
			continue
		}
		if ch == '\'' {
			break
		}
	}
	return j, true
}

// matchPunctuator returns the end index of the longest multi-character
// punctuator at i, or i if none matches.
func matchPunctuator(code string, i int) int {
	for _, p := range punctuators {
		if i+len(p) <= len(code) && code[i:i+len(p)] == p {
			return i + len(p)
		}
	}
	return i
}

// JoinMinimal joins tokens into a single line, inserting a single space
// exactly where [NeedsSeparator] demands one. Re-tokenizing the result
// yields the original sequence.
func JoinMinimal(toks []string) string {
	if len(toks) == 0 {
		return ""
	}
	var out []byte
	prev := ""
	for _, t := range toks {
		if prev != "" && NeedsSeparator(prev, t) {
			out = append(out, ' ')
		}
		out = append(out, t...)
		prev = t
	}
	return string(out)
}
