package authtoken

import (
	"time"

	"github.com/rs/zerolog"
)

type Option func(*Codec)

func WithClock(fn func() time.Time) Option {
	return func(c *Codec) {
		if fn != nil {
			c.now = fn
		}
	}
}

func WithNonceFunc(fn func() string) Option {
	return func(c *Codec) {
		if fn != nil {
			c.nonce = fn
		}
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Codec) {
		c.logger = logger
	}
}
