// Package loader implements the Loader (L) stage of the bootstrap
// pipeline: a byte classifier that decodes whitespace-and-comment-tolerant
// hex from stdin into a jitregion.Region, then hands control to it.
package loader
