// Package api is the single access point to the remote shop REST API. Every
// operation resolves to a typed payload or an *Error carrying a Kind from the
// failure taxonomy, so screens never inspect raw HTTP responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}
}

// WithCredential returns a request-scoped copy that sends
// "Authorization: Bearer <token>" on every call. The zero-token client never
// sends the header, so anonymous catalog calls stay anonymous.
func (c *Client) WithCredential(token string) *Client {
	scoped := *c
	scoped.token = token
	return &scoped
}

// Authenticated reports whether this client carries a credential.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindValidation, Message: "could not encode request"}
		}
		payload = bytes.NewBuffer(data)
	} else {
		payload = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return &Error{Kind: KindTransport, Message: "could not build request"}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Kind: KindServer, Status: resp.StatusCode, Message: "unexpected response from server"}
		}
	}
	return nil
}

func transportError(err error) *Error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTransport, Message: "request timed out, please try again"}
	}
	return &Error{Kind: KindTransport, Message: "could not reach the server, please try again"}
}

func statusError(resp *http.Response) *Error {
	var body messageResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)

	apiErr := &Error{Status: resp.StatusCode, Message: body.Message}
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		apiErr.Kind = KindUnauthenticated
		if apiErr.Message == "" {
			apiErr.Message = "please log in to continue"
		}
	case resp.StatusCode == http.StatusNotFound:
		apiErr.Kind = KindNotFound
		if apiErr.Message == "" {
			apiErr.Message = "not found"
		}
	case resp.StatusCode == http.StatusConflict:
		apiErr.Kind = KindInsufficientStock
		if apiErr.Message == "" {
			apiErr.Message = "insufficient stock"
		}
	case resp.StatusCode >= 500:
		// Raw server diagnostics never reach the user.
		apiErr.Kind = KindServer
		apiErr.Message = "something went wrong on our side, please try again later"
	default:
		apiErr.Kind = KindValidation
		if apiErr.Message == "" {
			apiErr.Message = "invalid request"
		}
	}
	return apiErr
}
