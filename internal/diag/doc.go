// Package diag defines the diagnostic records produced by every pipeline
// stage (lexer, parser, semantic checker) and the containers used to
// accumulate them. No stage aborts on a diagnostic: errors are collected
// and the stage returns a best-effort result.
package diag
