// Package forth implements the threaded-code Forth virtual machine that
// forms the second stage of the bootstrap pipeline.
//
// The VM owns a single byte-addressable memory region (mirroring a real
// Forth's flat address space) carrying STATE, HERE, BASE, LATEST, an input
// buffer, a word-scratch buffer, and the append-only dictionary, plus two
// Go-native stacks (parameter and return) that Forth words address via the
// usual stack primitives. Execution is indirect-threaded: a word's code
// field names either DOCOL (enter a colon definition's parameter thread) or
// a primitive, and NEXT is realized as an ordinary Go loop rather than a
// chain of function pointers.
package forth
