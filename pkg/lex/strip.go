package lex

import "strings"

// stripState enumerates the comment stripper's machine states.
type stripState int

const (
	stateNormal stripState = iota
	stateBlock             // inside /* ... */
	stateLine              // inside // ... \n
	stateString            // inside "..."
	stateChar              // inside '...'
	stateRaw               // inside R"delim( ... )delim"
)

// maxRawDelim caps the length of a raw string delimiter. Anything longer
// is treated as an ordinary quote rather than a raw string opener.
const maxRawDelim = 16

// Strip removes // line comments and /* */ block comments from code while
// preserving the contents and delimiters of string literals, character
// literals, and raw string literals.
//
// Line comments terminate at '\n', which is kept in the output so line
// structure survives. Block comments consume their closing */ and emit
// nothing. Inside "..." and '...' a backslash escapes the next byte, and
// newlines do not terminate the literal. Raw strings of the forms R"..",
// u8R"..", uR"..", UR"..", and LR".." are copied verbatim up to their
// closing )delim" sequence.
//
// Strip is idempotent: Strip(Strip(s)) == Strip(s).
func Strip(code string) string {
	var out strings.Builder
	out.Grow(len(code))

	st := stateNormal
	var rawDelim string
	esc := false

	for i := 0; i < len(code); {
		c := code[i]
		var n byte
		if i+1 < len(code) {
			n = code[i+1]
		}

		switch st {
		case stateNormal:
			if pfx, ok := rawOpenerAt(code, i); ok {
				delim, body, found := scanRawDelim(code, i+len(pfx))
				if found {
					st = stateRaw
					rawDelim = delim
					out.WriteString(code[i : i+len(pfx)+1]) // prefix and opening quote
					out.WriteString(delim)
					out.WriteByte('(')
					i = body
					continue
				}
			}
			switch {
			case c == '/' && n == '*':
				st = stateBlock
				i += 2
			case c == '/' && n == '/':
				st = stateLine
				i += 2
			case c == '"':
				st = stateString
				esc = false
				out.WriteByte(c)
				i++
			case c == '\'':
				st = stateChar
				esc = false
				out.WriteByte(c)
				i++
			default:
				out.WriteByte(c)
				i++
			}

		case stateBlock:
			if c == '*' && n == '/' {
				st = stateNormal
				i += 2
			} else {
				i++
			}

		case stateLine:
			if c == '\n' {
				st = stateNormal
				out.WriteByte(c)
			}
			i++

		case stateString:
			out.WriteByte(c)
			switch {
			case esc:
				esc = false
			case c == '\\':
				esc = true
			case c == '"':
				st = stateNormal
			}
			i++

		case stateChar:
			out.WriteByte(c)
			switch {
			case esc:
				esc = false
			case c == '\\':
				esc = true
			case c == '\'':
				st = stateNormal
			}
			i++

		case stateRaw:
			if c == ')' && hasRawCloser(code, i, rawDelim) {
				out.WriteByte(')')
				out.WriteString(rawDelim)
				out.WriteByte('"')
				i += 2 + len(rawDelim)
				st = stateNormal
				break
			}
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// rawOpenerAt reports whether code[i:] begins a raw string opener and
// returns the prefix up to and including the R (e.g. "R", "u8R", "LR").
// The returned prefix does not include the opening quote.
func rawOpenerAt(code string, i int) (string, bool) {
	rest := code[i:]
	for _, p := range []string{"u8R\"", "uR\"", "UR\"", "LR\"", "R\""} {
		if strings.HasPrefix(rest, p) {
			return p[:len(p)-1], true
		}
	}
	return "", false
}

// scanRawDelim scans the delimiter of a raw string whose R has length
// pfxEnd bytes before position pfxEnd; pfxEnd must point at the opening
// quote. It returns the delimiter, the index of the first body byte, and
// whether a well-formed opener (delimiter then '(') was found.
func scanRawDelim(code string, pfxEnd int) (string, int, bool) {
	j := pfxEnd + 1 // skip the quote
	start := j
	for j < len(code) && code[j] != '(' {
		d := code[j]
		if d == ')' || d == '\\' || isSpace(d) || j-start >= maxRawDelim {
			return "", 0, false
		}
		j++
	}
	if j >= len(code) {
		return "", 0, false
	}
	return code[start:j], j + 1, true
}

// hasRawCloser reports whether code[i:] is the closing )delim" sequence.
func hasRawCloser(code string, i int, delim string) bool {
	end := i + 1 + len(delim)
	return end < len(code) && code[i+1:end] == delim && code[end] == '"'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
