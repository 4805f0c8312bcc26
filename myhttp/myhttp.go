// The myhttp package provides the HTTP client for the application.
// It pins a common user agent string and wraps JSON request and
// response handling used by the Twitch web services.

package myhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DefaultClient is the client
var DefaultClient = NewClient()

const UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client is the classic http client with a given user agent string
type Client struct {
	*http.Client
	userAgent string
}

// SetUserAgent is a configuration function to give a user agent string to the client
func SetUserAgent(ua string) func(c *Client) {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient create an HTTP Client and configure it with a set of config functions
func NewClient(conf ...func(c *Client)) *Client {
	c := &Client{
		Client:    &http.Client{},
		userAgent: UserAgent,
	}
	for _, f := range conf {
		f(c)
	}
	return c
}

// Error reports a response with an HTTP error status
type Error struct {
	StatusCode int    // HTTP status
	Message    string // Response body, when any
}

func (e Error) Error() string {
	return fmt.Sprintf("%s(%d): %s", http.StatusText(e.StatusCode), e.StatusCode, e.Message)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, Error{
			StatusCode: resp.StatusCode,
			Message:    string(bytes.TrimSpace(b)),
		}
	}
	return resp, nil
}

// Get establish a GET request and return a reader with the response body
// and the announced content length, -1 when the server doesn't tell.
func (c *Client) Get(ctx context.Context, u string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("can't get url: %w", err)
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, 0, err
	}
	return resp.Body, resp.ContentLength, nil
}

func (c *Client) doJSON(req *http.Request, h http.Header, result interface{}) error {
	for k, vv := range h {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, result)
}

// GetJSON issues a GET request and decodes the JSON response into result
func (c *Client) GetJSON(ctx context.Context, u string, h http.Header, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, h, result)
}

// PostJSON issues a POST request with the JSON encoded payload as body, when
// given, and decodes the JSON response into result
func (c *Client) PostJSON(ctx context.Context, u string, h http.Header, payload, result interface{}) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.doJSON(req, h, result)
}
