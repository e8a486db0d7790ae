// Package model defines the abstract document model shared by all
// format adapters and normalization passes.
//
// A Document is an ordered sequence of blocks (paragraphs and tables).
// Adapters build a Document from their native format, the normalization
// passes mutate it in place, and the same adapter serializes it back.
// Nothing in this package is format-specific: run styling is carried
// opaquely and directionality is always derived from current text.
package model
