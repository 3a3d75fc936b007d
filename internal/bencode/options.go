package bencode

import "log/slog"

const DefaultMaxDepth = 1024

type Option func(*Decoder)

// WithLogger routes the decoder's debug and warning records to l.
func WithLogger(l *slog.Logger) Option {
	return func(d *Decoder) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMaxDepth bounds list/dictionary nesting. n <= 0 keeps the default.
func WithMaxDepth(n int) Option {
	return func(d *Decoder) {
		if n > 0 {
			d.maxDepth = n
		}
	}
}

// WithStrict makes Decode reject bytes left over after the root value.
func WithStrict() Option {
	return func(d *Decoder) {
		d.strict = true
	}
}
