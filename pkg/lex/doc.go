// Package lex provides the lexical layer of the silhouette pipeline.
//
// The package turns a source file into the flat token sequence the layout
// engine consumes, and answers the one question the engine keeps asking:
// may two tokens be written back to back without changing what a lexer
// would read?
//
// # Pipeline position
//
// Source text flows through two stages before layout:
//
//  1. Strip removes // and /* */ comments while preserving string,
//     character, and raw string literals byte for byte.
//  2. Tokenize splits the stripped text into an ordered sequence of
//     lexeme strings.
//
// [NeedsSeparator] is the safety predicate between adjacent lexemes: it
// reports whether juxtaposing them would merge into a different token
// stream on re-lexing. The layout engine never places two tokens
// adjacently when it returns true.
//
// The grammar is deliberately permissive. Newlines inside quoted literals
// do not terminate them, numeric literals swallow any run of alphanumerics,
// dots, underscores, and digit separators, and unknown bytes become
// single-byte tokens. Well-formed input round-trips exactly; malformed
// input degrades without panicking.
package lex
