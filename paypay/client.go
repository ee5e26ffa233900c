package paypay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/andyle182810/paypayopa/authtoken"
	"github.com/andyle182810/paypayopa/httpclient"
	"github.com/andyle182810/paypayopa/logutil"
	"github.com/andyle182810/paypayopa/validator"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrInvalidRequest = errors.New("paypay: invalid request")

const userAgent = "paypayopa-go/" + Version

type Client struct {
	api       *httpclient.Client
	validator *validator.Validator
	apiSecret string
	now       func() time.Time
	logger    *zerolog.Logger

	Payments        *PaymentService
	PendingPayments *PendingPaymentService
}

type options struct {
	apiOpts []httpclient.Option
	logger  *zerolog.Logger
	now     func() time.Time
}

type Option func(*options)

func WithTransport(transport httpclient.Transport) Option {
	return func(o *options) {
		o.apiOpts = append(o.apiOpts, httpclient.WithTransport(transport))
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.apiOpts = append(o.apiOpts, httpclient.WithHTTPClient(httpClient))
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithClock(fn func() time.Time) Option {
	return func(o *options) {
		if fn != nil {
			o.now = fn
			o.apiOpts = append(o.apiOpts, httpclient.WithClock(fn))
		}
	}
}

func WithNonceFunc(fn func() string) Option {
	return func(o *options) {
		o.apiOpts = append(o.apiOpts, httpclient.WithNonceFunc(fn))
	}
}

func New(cfg Config, opts ...Option) (*Client, error) {
	o := &options{
		apiOpts: nil,
		logger:  nil,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		logger := log.Logger.Level(logutil.ParseZerologLevel(cfg.LogLevel))
		o.logger = &logger
	}

	apiOpts := []httpclient.Option{
		httpclient.WithLogger(o.logger),
		httpclient.WithAssumeMerchant(cfg.AssumeMerchant),
	}

	if cfg.Timeout > 0 {
		apiOpts = append(apiOpts, httpclient.WithTimeout(cfg.Timeout))
	}

	apiOpts = append(apiOpts, o.apiOpts...)

	api, err := httpclient.New(cfg.ResolveBaseURL(), cfg.Credentials(), apiOpts...)
	if err != nil {
		return nil, err
	}

	client := &Client{
		api:             api,
		validator:       validator.New(),
		apiSecret:       cfg.APISecret,
		now:             o.now,
		logger:          o.logger,
		Payments:        nil,
		PendingPayments: nil,
	}

	client.Payments = &PaymentService{client: client}
	client.PendingPayments = &PendingPaymentService{client: client}

	return client, nil
}

func (c *Client) BaseURL() string {
	return c.api.BaseURL()
}

// SetAssumeMerchant ignores empty ids.
func (c *Client) SetAssumeMerchant(merchantID string) {
	if merchantID != "" {
		c.api.SetAssumeMerchant(merchantID)
	}
}

func (c *Client) EncodeJWT(params authtoken.EncodeParams) (string, error) {
	codec, err := c.tokenCodec()
	if err != nil {
		return "", err
	}

	return codec.Encode(params)
}

func (c *Client) DecodeJWT(clientID, token string) (authtoken.Identity, error) {
	codec, err := c.tokenCodec()
	if err != nil {
		return authtoken.Identity{}, err
	}

	return codec.Decode(clientID, token)
}

func (c *Client) tokenCodec() (*authtoken.Codec, error) {
	return authtoken.New(c.apiSecret, authtoken.WithClock(c.now), authtoken.WithLogger(c.logger))
}

func (c *Client) validate(req any) error {
	if err := c.validator.Validate(req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	return nil
}

func (c *Client) requestedAt(value int64) int64 {
	if value == 0 {
		return c.now().Unix()
	}

	return value
}

func call[T any](
	ctx context.Context,
	c *Client,
	method string,
	path string,
	body any,
	apiName string,
) (*Response[T], error) {
	return httpclient.DoJSON[Response[T]](ctx, c.api, method, path, body,
		httpclient.WithAPIName(apiName),
		httpclient.WithRequestHeader("User-Agent", userAgent),
	)
}

func resourcePath(base, id, param string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: missing request param %s", ErrInvalidRequest, param)
	}

	return base + "/" + url.PathEscape(id), nil
}
