package feedcache

import "time"

type getOptions struct {
	maxAge       time.Duration
	forceRefresh bool
}

// Option tunes a single Get call.
type Option func(*getOptions)

// WithMaxAge overrides the staleness threshold for this call.
func WithMaxAge(d time.Duration) Option {
	return func(o *getOptions) {
		if d > 0 {
			o.maxAge = d
		}
	}
}

// WithForceRefresh bypasses the freshness check so the call always reaches
// upstream (or joins the fetch already doing so).
func WithForceRefresh() Option {
	return func(o *getOptions) {
		o.forceRefresh = true
	}
}
