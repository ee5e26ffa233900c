package httpclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const ResolveURL = "https://developer.paypay.ne.jp/develop/resolve"

// Response is a successful or absent (404) outcome. Error outcomes are
// reported as *ProviderError instead.
type Response struct {
	StatusCode int
	Body       []byte
	found      bool
}

func (r *Response) Found() bool {
	return r != nil && r.found
}

// Decode unmarshals the body into v. An empty success body leaves v untouched.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Body) == 0 {
		return nil
	}

	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	return nil
}

type resultEnvelope struct {
	ResultInfo ResultInfo `json:"resultInfo"`
}

// Classify maps a transport outcome onto the PayPay response policy.
func Classify(statusCode int, body []byte, apiName string) (*Response, error) {
	switch {
	case statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices:
		return &Response{StatusCode: statusCode, Body: body, found: true}, nil
	case statusCode == http.StatusNotFound:
		return &Response{StatusCode: statusCode, Body: body, found: false}, nil
	case statusCode == http.StatusUnauthorized:
		return nil, newProviderError(KindUnauthorized, statusCode, apiName, body)
	case statusCode == http.StatusInternalServerError:
		return nil, newProviderError(KindServerError, statusCode, apiName, body)
	default:
		providerErr := newProviderError(KindUnclassified, statusCode, apiName, body)
		providerErr.ResolutionHint = ResolutionHint(apiName, providerErr.ResultInfo)

		return nil, providerErr
	}
}

func ResolutionHint(apiName string, info ResultInfo) string {
	return fmt.Sprintf("%s?api_name=%s&code=%s&codeId=%s", ResolveURL, apiName, info.Code, info.CodeID)
}

func newProviderError(kind ErrorKind, statusCode int, apiName string, body []byte) *ProviderError {
	var envelope resultEnvelope

	// Non-JSON error bodies still yield an error, just without result info.
	_ = json.Unmarshal(body, &envelope)

	return &ProviderError{
		Kind:           kind,
		StatusCode:     statusCode,
		APIName:        apiName,
		Body:           body,
		ResultInfo:     envelope.ResultInfo,
		ResolutionHint: "",
	}
}
