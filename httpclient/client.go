package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/andyle182810/paypayopa/opaauth"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Client struct {
	baseURL    string
	transport  Transport
	signer     *opaauth.Signer
	signerOpts []opaauth.Option
	timeout    time.Duration
	logger     *zerolog.Logger

	mu             sync.RWMutex
	assumeMerchant string
}

func New(baseURL string, creds opaauth.Credentials, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		transport:      nil,
		signer:         nil,
		signerOpts:     nil,
		timeout:        DefaultTimeout,
		logger:         &log.Logger,
		mu:             sync.RWMutex{},
		assumeMerchant: "",
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		nop := zerolog.Nop()
		c.logger = &nop
	}

	signer, err := opaauth.NewSigner(creds, c.signerOpts...)
	if err != nil {
		return nil, err
	}

	c.signer = signer

	if c.transport == nil {
		c.transport = NewRestyTransport(newDefaultRestyClient(c.timeout))
	}

	return c, nil
}

func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, opts...)
}

func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body, opts...)
}

func (c *Client) Put(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body, opts...)
}

func (c *Client) Patch(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, body, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, opts...)
}

// Do signs and sends a single request. A 404 yields a Response whose Found
// reports false; 401, 500 and any other non-2xx status yield *ProviderError.
func (c *Client) Do(
	ctx context.Context,
	method string,
	path string,
	body any,
	opts ...RequestOption,
) (*Response, error) {
	cfg := buildRequestConfig(opts...)

	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	payload, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	authHeader, err := c.signer.Sign(opaauth.NewRequest(method, path, payload))
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(cfg.headers)+3)
	maps.Copy(headers, cfg.headers)

	// Signed headers come only from the request itself.
	maps.DeleteFunc(headers, func(key, _ string) bool {
		return isSignedHeader(key)
	})

	headers[HeaderAuthorization] = authHeader

	if payload != nil {
		headers[HeaderContentType] = opaauth.ContentTypeJSON
	}

	if merchant := c.AssumeMerchant(); merchant != "" {
		headers[HeaderAssumeMerchant] = merchant
	}

	url := c.buildURL(path, cfg.query)

	raw, err := c.transport.Send(ctx, method, url, headers, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("api_name", cfg.apiName).
		Int("status", raw.StatusCode).
		Msg("PayPay API call completed")

	resp, err := Classify(raw.StatusCode, raw.Body, cfg.apiName)
	if providerErr, ok := IsProviderError(err); ok && providerErr.ResolutionHint != "" {
		c.logger.Warn().
			Str("api_name", cfg.apiName).
			Int("status", providerErr.StatusCode).
			Str("resolve_url", providerErr.ResolutionHint).
			Msg("This link should help you to troubleshoot the error")
	}

	return resp, err
}

func (c *Client) SetAssumeMerchant(merchantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.assumeMerchant = merchantID
}

func (c *Client) AssumeMerchant() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.assumeMerchant
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func isSignedHeader(key string) bool {
	switch http.CanonicalHeaderKey(key) {
	case HeaderAuthorization, HeaderContentType, http.CanonicalHeaderKey(HeaderAssumeMerchant):
		return true
	default:
		return false
	}
}

func buildRequestConfig(opts ...RequestOption) *requestConfig {
	cfg := &requestConfig{
		apiName: "",
		headers: nil,
		query:   nil,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

func encodeBody(body any) ([]byte, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeBody, err)
	}

	return payload, nil
}

// Query values are joined verbatim, without escaping.
func (c *Client) buildURL(path string, query []queryParam) string {
	fullURL := c.baseURL + path

	if len(query) == 0 {
		return fullURL
	}

	pairs := make([]string, 0, len(query))
	for _, param := range query {
		pairs = append(pairs, param.key+"="+param.value)
	}

	return fullURL + "?" + strings.Join(pairs, "&")
}
