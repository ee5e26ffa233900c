package httpclient

import (
	"net/http"
	"slices"
	"time"

	"github.com/andyle182810/paypayopa/opaauth"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const (
	DefaultTimeout       = 30 * time.Second
	HeaderContentType    = "Content-Type"
	HeaderAuthorization  = "Authorization"
	HeaderAssumeMerchant = "X-ASSUME-MERCHANT"
)

type Option func(*Client)

// WithTimeout applies to the default transport only.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.transport = NewRestyTransport(resty.NewWithClient(httpClient))
		}
	}
}

func WithTransport(transport Transport) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithAssumeMerchant(merchantID string) Option {
	return func(c *Client) {
		c.assumeMerchant = merchantID
	}
}

func WithNonceFunc(fn func() string) Option {
	return func(c *Client) {
		c.signerOpts = append(c.signerOpts, opaauth.WithNonceFunc(fn))
	}
}

func WithClock(fn func() time.Time) Option {
	return func(c *Client) {
		c.signerOpts = append(c.signerOpts, opaauth.WithClock(fn))
	}
}

type RequestOption func(*requestConfig)

type queryParam struct {
	key   string
	value string
}

type requestConfig struct {
	apiName string
	headers map[string]string
	query   []queryParam
}

// WithAPIName names the PayPay API being called; it is embedded in
// resolution hints.
func WithAPIName(name string) RequestOption {
	return func(rc *requestConfig) {
		rc.apiName = name
	}
}

func WithRequestHeader(key, value string) RequestOption {
	return func(rc *requestConfig) {
		if rc.headers == nil {
			rc.headers = make(map[string]string)
		}

		rc.headers[key] = value
	}
}

func WithQuery(key, value string) RequestOption {
	return func(rc *requestConfig) {
		rc.query = append(rc.query, queryParam{key: key, value: value})
	}
}

// WithQueryParams appends params in key order.
func WithQueryParams(params map[string]string) RequestOption {
	return func(rc *requestConfig) {
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}

		slices.Sort(keys)

		for _, k := range keys {
			rc.query = append(rc.query, queryParam{key: k, value: params[k]})
		}
	}
}
