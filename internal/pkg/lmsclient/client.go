package lmsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// HTTPError is returned for any non-2xx upstream response.
// Body is the raw response body, untouched.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("lms %s %s: status %d", e.Method, e.URL, e.StatusCode)
}

type tokenKey struct{}

// ContextWithToken attaches the caller's raw access token to ctx.
// Requests made with that ctx are authenticated with it instead of the
// client's fallback token source.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the token stored by ContextWithToken.
func TokenFromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(tokenKey{}).(string)
	return tok, ok && tok != ""
}

type Options struct {
	// TokenType is sent as the Authorization scheme ("JWT" or "Bearer").
	TokenType string
	Timeout   time.Duration
	// Fallback authenticates requests whose ctx carries no token.
	Fallback oauth2.TokenSource
}

// Client is the authenticated transport used for every LMS call.
type Client struct {
	base      *http.Client
	tokenType string
	fallback  oauth2.TokenSource
}

func New(opts Options) *Client {
	if opts.TokenType == "" {
		opts.TokenType = "JWT"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Client{
		base:      &http.Client{Timeout: opts.Timeout},
		tokenType: opts.TokenType,
		fallback:  opts.Fallback,
	}
}

// NewClientCredentialsSource builds an oauth2 token source against the LMS
// token endpoint, for service-to-service calls.
func NewClientCredentialsSource(ctx context.Context, lmsBaseURL, clientID, clientSecret string) oauth2.TokenSource {
	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     strings.TrimRight(lmsBaseURL, "/") + "/oauth2/access_token",
		EndpointParams: url.Values{
			"token_type": {"jwt"},
		},
	}
	return cfg.TokenSource(ctx)
}

// NewStaticTokenSource wraps a fixed token.
func NewStaticTokenSource(token, tokenType string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: tokenType})
}

func (c *Client) httpClient(ctx context.Context) *http.Client {
	ts := c.fallback
	if tok, ok := TokenFromContext(ctx); ok {
		ts = NewStaticTokenSource(tok, c.tokenType)
	}
	if ts == nil {
		return c.base
	}
	return oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, c.base), ts)
}

func (c *Client) Get(ctx context.Context, rawURL string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, req)
}

// Patch sends body as JSON.
func (c *Client) Patch(ctx context.Context, rawURL string, body interface{}) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patch body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, rawURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(ctx, req)
}

func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(ctx, req)
}

func (c *Client) do(ctx context.Context, req *http.Request) (json.RawMessage, error) {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient(ctx).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	if len(body) == 0 {
		return nil, nil
	}
	return json.RawMessage(body), nil
}
