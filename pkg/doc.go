// Package pkg provides the core libraries for silhouette.
//
// # Overview
//
// Silhouette rewrites a program as a visual rendering of an ASCII-art
// image: the output is still the same program token for token, but its
// whitespace and synthesized comments are arranged so that dense
// characters cluster where the art has foreground pixels. The pkg
// directory is organized by pipeline stage:
//
//  1. [lex] - Comment stripping, tokenization, and the separator oracle
//  2. [art] - Density map and art-to-grid parsing
//  3. [layout] - The per-row DP layout engine (the core of the tool)
//  4. [pipeline] - Orchestration (strip → tokenize → art → layout) with caching
//  5. [cache], [config], [errors], [buildinfo] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	source code                 art image
//	     ↓                          ↓
//	 lex.Strip                  art.Parse
//	     ↓                          ↓
//	lex.Tokenize               binary grid
//	     └──────────┬───────────────┘
//	                ↓
//	         layout.Render
//	                ↓
//	        reshaped source
//
// The contract throughout: re-tokenizing the output yields exactly the
// input's token sequence.
package pkg
