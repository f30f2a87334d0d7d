package client

import (
	"net/http"
	"strings"
	"time"
)

// Option is a functional option for configuring the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets a custom logger
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRetryMax sets the maximum number of retries; zero disables retries.
func WithRetryMax(retryMax int) Option {
	return func(c *Client) {
		if retryMax >= 0 {
			c.retryMax = retryMax
		}
	}
}

// WithRetryWait sets the backoff bounds.  max is ignored when below min.
func WithRetryWait(min, max time.Duration) Option {
	return func(c *Client) {
		if min > 0 {
			c.retryWaitMin = min
			if max >= min {
				c.retryWaitMax = max
			}
		}
	}
}

// WithDefaultCity sets the city sent with case and lawyer lookups that leave
// it blank.
func WithDefaultCity(city string) Option {
	return func(c *Client) {
		c.defaultCity = strings.TrimSpace(city)
	}
}

// WithAPIPrefix replaces the /api/v1 path prefix.  An empty prefix keeps the
// default.
func WithAPIPrefix(prefix string) Option {
	return func(c *Client) {
		prefix = strings.Trim(strings.TrimSpace(prefix), "/")
		if prefix != "" {
			c.apiPrefix = "/" + prefix
		}
	}
}

// WithUserAgent sets a custom User-Agent string
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

//Personal.AI order the ending
