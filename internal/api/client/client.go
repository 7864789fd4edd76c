package client

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Client holds the endpoint wiring shared by API calls.
type Client struct {
	base   *url.URL
	http   *http.Client
	apiKey string
	model  string
}

// ClientConfig holds the configuration for the client
type ClientConfig struct {
	Endpoint string
	APIKey   string
	Model    string

	// HTTPClient defaults to a plain http.Client. Timeouts are applied per
	// request through the context, not here.
	HTTPClient *http.Client
}

// NewClient validates the endpoint and builds a client. The API key is not
// checked; a missing key only shows up as a failed request.
func NewClient(config ClientConfig) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(config.Endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("endpoint %q must be an absolute URL", config.Endpoint)
	}
	if config.Model == "" {
		return nil, errors.New("model is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		base:   base,
		http:   httpClient,
		apiKey: config.APIKey,
		model:  config.Model,
	}, nil
}

// GetGenerateURL returns
// <endpoint>/v1beta/models/<model>:generateContent?key=<api key>.
func (c *Client) GetGenerateURL() string {
	path := c.base.Path + "/v1beta/models/" + c.model + ":generateContent"
	u := *c.base
	u.Path = path
	u.RawPath = ""
	u.RawQuery = url.Values{"key": {c.apiKey}}.Encode()
	return u.String()
}

// StatusError reports a non-2xx answer from the endpoint.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return "unexpected status: " + e.Status
	}
	return fmt.Sprintf("unexpected status: %s: %s", e.Status, e.Body)
}
