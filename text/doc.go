// Package text provides script classification and heading repair for
// right-to-left document normalization.
//
// Classify decides whether a text span is RTL-dominant by the ratio of
// Arabic-range code points to letters. ReorderHeading repairs manually
// numbered headings whose ordinal marker was glued to the wrong end of
// the line by visual bidi rendering. Neither function implements the
// full Unicode bidirectional algorithm; they are the narrow heuristics
// the supported corruption patterns need.
package text
