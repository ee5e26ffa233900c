package httpclient

import (
	"errors"
	"fmt"
)

var (
	ErrTransport      = errors.New("httpclient: transport failed")
	ErrEncodeBody     = errors.New("httpclient: failed to encode request body")
	ErrDecodeResponse = errors.New("httpclient: failed to decode response")
	ErrProviderError  = errors.New("httpclient: provider error")
	ErrUnauthorized   = errors.New("httpclient: unauthorized")
	ErrServerError    = errors.New("httpclient: server error")
	ErrUnclassified   = errors.New("httpclient: unclassified provider error")
)

type ErrorKind int

const (
	KindUnauthorized ErrorKind = iota + 1
	KindServerError
	KindUnclassified
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindServerError:
		return "server_error"
	case KindUnclassified:
		return "unclassified"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindUnauthorized:
		return ErrUnauthorized
	case KindServerError:
		return ErrServerError
	default:
		return ErrUnclassified
	}
}

// ResultInfo is the status block PayPay attaches to every response body.
type ResultInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	CodeID  string `json:"codeId"`
}

type ProviderError struct {
	Kind           ErrorKind
	StatusCode     int
	APIName        string
	Body           []byte
	ResultInfo     ResultInfo
	ResolutionHint string
}

func (e *ProviderError) Error() string {
	switch e.Kind {
	case KindUnauthorized:
		return fmt.Sprintf("httpclient: %d unauthorized request. Body: %s", e.StatusCode, e.Body)
	case KindServerError:
		return fmt.Sprintf("httpclient: %d server error. Body: %s", e.StatusCode, e.Body)
	default:
		if e.ResultInfo.Code != "" {
			return fmt.Sprintf("httpclient: provider returned status %d: %s (%s)",
				e.StatusCode, e.ResultInfo.Code, e.ResultInfo.Message)
		}

		return fmt.Sprintf("httpclient: provider returned status %d", e.StatusCode)
	}
}

func (e *ProviderError) Is(target error) bool {
	return errors.Is(target, ErrProviderError)
}

func (e *ProviderError) Unwrap() error {
	return e.Kind.sentinel()
}

func IsProviderError(err error) (*ProviderError, bool) {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr, true
	}

	return nil, false
}
