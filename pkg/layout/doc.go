// Package layout places a token stream onto a fixed-width page so that
// the silhouette of the emitted text approximates a binary target grid.
//
// The engine works row by row. For each row it solves a small dynamic
// program over (column reached, tokens consumed, kind of last segment),
// where a segment is a single space, a synthesized /* ... */ comment, or
// the next token of the stream. Each character earns a point when its
// foreground/background class matches the target cell under it; the DP
// maximizes that score subject to lexical safety: two tokens that would
// merge on re-lexing are never placed adjacently.
//
// Terminal selection trades a bounded amount of score for token
// throughput, preferring rows that consume more tokens as long as they
// stay within a relaxation window of the per-row optimum. Rows below the
// image switch to a greedy packing with no aesthetic objective.
//
// The output re-tokenizes to exactly the input sequence: tokens appear
// verbatim and in order, synthesized comment interiors never contain */,
// and every adjacency the separator oracle flags is broken by a space or
// a newline. A synthesized comment alone never separates two tokens,
// because stripping removes it without leaving whitespace.
package layout
