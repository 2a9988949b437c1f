// Package grammar defines the abstract syntax tree produced by the
// meta-parser and rewritten in place by the normalization passes.
//
// Every node embeds a parent back-link so that a pass can splice a
// subtree without threading an explicit zipper through the call stack.
// The tree is never shared between parses: all rewrites are destructive,
// matching the single-threaded, single-owner lifecycle described for the
// pipeline as a whole.
package grammar
