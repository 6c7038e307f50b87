// Package ccomp implements the C→ASM Compiler (C) stage: a lexer, a
// recursive-descent/precedence-climbing parser, a per-function symbol
// table, and a code generator targeting ARM64 Mach-O assembly text for
// the small C subset spec.md §4.C describes.
package ccomp
