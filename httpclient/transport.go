package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport performs a single HTTP exchange. Implementations must not retry.
type Transport interface {
	Send(ctx context.Context, method, url string, headers map[string]string, body []byte) (*RawResponse, error)
}

var _ Transport = (*RestyTransport)(nil)

type RestyTransport struct {
	client *resty.Client
}

func NewRestyTransport(client *resty.Client) *RestyTransport {
	if client == nil {
		client = newDefaultRestyClient(DefaultTimeout)
	}

	return &RestyTransport{client: client}
}

func (t *RestyTransport) Send(
	ctx context.Context,
	method string,
	url string,
	headers map[string]string,
	body []byte,
) (*RawResponse, error) {
	req := t.client.R().
		SetContext(ctx).
		SetHeaders(headers)

	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, err
	}

	return &RawResponse{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}

func newDefaultRestyClient(timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
}
