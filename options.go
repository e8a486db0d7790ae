package rtlfix

import "github.com/dlvinn/rtlfix/normalize"

// Option adjusts how a document is normalized.
type Option func(*normalize.Options)

// WithRTLThreshold overrides the Arabic-letter fraction a span must
// strictly exceed to classify as RTL.
func WithRTLThreshold(t float64) Option {
	return func(o *normalize.Options) {
		o.RTLThreshold = t
	}
}

// WithoutEncodingRepair disables the mojibake pass; layout fixes then
// operate on the text as-is.
func WithoutEncodingRepair() Option {
	return func(o *normalize.Options) {
		o.RepairEncoding = false
	}
}

// WithoutHeadingReorder disables the numbered-heading pass.
func WithoutHeadingReorder() Option {
	return func(o *normalize.Options) {
		o.ReorderHeadings = false
	}
}

func buildOptions(opts []Option) normalize.Options {
	o := normalize.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
