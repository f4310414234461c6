package vdxf

import "github.com/datatrails/go-datatrails-common/logger"

type decodeOptions struct {
	log logger.Logger
}

// DecodeOption configures Universal Value decoding.
type DecodeOption func(*decodeOptions)

// WithLogger logs recoverable decode events, such as trailing data captured
// as opaque, at debug level. A nil logger disables logging.
func WithLogger(log logger.Logger) DecodeOption {
	return func(o *decodeOptions) {
		o.log = log
	}
}

func newDecodeOptions(opts ...DecodeOption) decodeOptions {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o decodeOptions) debugf(format string, args ...any) {
	if o.log == nil {
		return
	}
	o.log.Debugf(format, args...)
}
