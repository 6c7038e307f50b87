// Package pipeline wires the Loader, Forth VM, Forth Extensions, and C
// compiler stages into the one combined driver spec.md §2 and §6
// describe: a single stdin stream that a hex prefix, then Forth source,
// then C source walk through in order, producing ARM64 assembly text on
// stdout.
package pipeline
