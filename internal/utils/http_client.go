package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a JSON client for the control API at baseURL. A
// zero timeout leaves requests unbounded.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &HTTPClient{Client: c}
}

// WithToken sets the bearer token sent with every request.
func (c *HTTPClient) WithToken(token string) *HTTPClient {
	if token != "" {
		c.SetAuthToken(token)
	}
	return c
}
