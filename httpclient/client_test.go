package httpclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/andyle182810/paypayopa/httpclient"
	"github.com/andyle182810/paypayopa/opaauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testNonce     = "abcd1234"
	testTimestamp = 1700000000
)

var errConnectionReset = errors.New("connection reset")

func testCredentials() opaauth.Credentials {
	return opaauth.Credentials{APIKey: "key", APISecret: "c2VjcmV0"}
}

func newTestClient(t *testing.T, baseURL string, opts ...httpclient.Option) *httpclient.Client {
	t.Helper()

	allOpts := []httpclient.Option{
		httpclient.WithNonceFunc(func() string { return testNonce }),
		httpclient.WithClock(func() time.Time { return time.Unix(testTimestamp, 0) }),
		httpclient.WithLogger(nil),
	}
	allOpts = append(allOpts, opts...)

	client, err := httpclient.New(baseURL, testCredentials(), allOpts...)
	require.NoError(t, err)

	return client
}

func expectedHeader(t *testing.T, method, path string, body []byte) string {
	t.Helper()

	header, err := opaauth.Header(testCredentials(), opaauth.NewRequest(method, path, body), testNonce, "1700000000")
	require.NoError(t, err)

	return header
}

type recordingTransport struct {
	mu       sync.Mutex
	method   string
	url      string
	headers  map[string]string
	body     []byte
	response *httpclient.RawResponse
	err      error
}

func (r *recordingTransport) Send(
	_ context.Context,
	method, url string,
	headers map[string]string,
	body []byte,
) (*httpclient.RawResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.method = method
	r.url = url
	r.headers = headers
	r.body = body

	return r.response, r.err
}

func okTransport() *recordingTransport {
	return &recordingTransport{
		mu:      sync.Mutex{},
		method:  "",
		url:     "",
		headers: nil,
		body:    nil,
		response: &httpclient.RawResponse{
			StatusCode: http.StatusOK,
			Header:     http.Header{},
			Body:       []byte(`{"resultInfo":{"code":"SUCCESS"}}`),
		},
		err: nil,
	}
}

func TestNew_TrimsTrailingSlashFromBaseURL(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "https://api.example.com/")

	require.Equal(t, "https://api.example.com", client.BaseURL())
}

func TestNew_RejectsInvalidCredentials(t *testing.T) {
	t.Parallel()

	_, err := httpclient.New("https://api.example.com", opaauth.Credentials{APIKey: "", APISecret: ""})

	require.ErrorIs(t, err, opaauth.ErrInvalidCredentials)
}

func TestClient_PostSignsExactWireBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/payments", r.URL.Path)
		assert.JSONEq(t, `{"a":1}`, string(body))
		assert.Equal(t, expectedHeader(t, http.MethodPost, "/v2/payments", body), r.Header.Get("Authorization"))
		assert.Equal(t, "application/json;charset=UTF-8", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("X-Assume-Merchant"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resultInfo":{"code":"SUCCESS"},"data":{"x":1}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	resp, err := client.Post(t.Context(), "/v2/payments", map[string]int{"a": 1})

	require.NoError(t, err)
	require.True(t, resp.Found())
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClient_DeleteSendsNoBodyAndEmptyDigest(t *testing.T) {
	t.Parallel()

	transport := okTransport()
	client := newTestClient(t, "https://api.example.com", httpclient.WithTransport(transport))

	_, err := client.Delete(t.Context(), "/v2/payments/merchant-1")
	require.NoError(t, err)

	require.Equal(t, http.MethodDelete, transport.method)
	require.Nil(t, transport.body)
	require.NotContains(t, transport.headers, httpclient.HeaderContentType)
	require.Equal(t, expectedHeader(t, http.MethodDelete, "/v2/payments/merchant-1", nil),
		transport.headers[httpclient.HeaderAuthorization])
	require.Contains(t, transport.headers[httpclient.HeaderAuthorization], ":empty")
}

func TestClient_GetBuildsUnescapedQueryInInsertionOrder(t *testing.T) {
	t.Parallel()

	transport := okTransport()
	client := newTestClient(t, "https://api.example.com", httpclient.WithTransport(transport))

	_, err := client.Get(t.Context(), "/v2/refunds",
		httpclient.WithQuery("zeta", "1"),
		httpclient.WithQuery("alpha", "a b&c"),
	)
	require.NoError(t, err)

	require.Equal(t, "https://api.example.com/v2/refunds?zeta=1&alpha=a b&c", transport.url)
	require.Equal(t, expectedHeader(t, http.MethodGet, "/v2/refunds", nil),
		transport.headers[httpclient.HeaderAuthorization])
}

func TestClient_WithQueryParamsSortsKeys(t *testing.T) {
	t.Parallel()

	transport := okTransport()
	client := newTestClient(t, "https://api.example.com", httpclient.WithTransport(transport))

	_, err := client.Get(t.Context(), "/items", httpclient.WithQueryParams(map[string]string{
		"b": "2",
		"a": "1",
	}))
	require.NoError(t, err)

	require.Equal(t, "https://api.example.com/items?a=1&b=2", transport.url)
}

func TestClient_BuildsURLWithoutLeadingSlash(t *testing.T) {
	t.Parallel()

	transport := okTransport()
	client := newTestClient(t, "https://api.example.com", httpclient.WithTransport(transport))

	_, err := client.Get(t.Context(), "v2/payments/1")
	require.NoError(t, err)

	require.Equal(t, "https://api.example.com/v2/payments/1", transport.url)
}

func TestClient_AssumeMerchantHeader(t *testing.T) {
	t.Parallel()

	transport := okTransport()
	client := newTestClient(t, "https://api.example.com",
		httpclient.WithTransport(transport),
		httpclient.WithAssumeMerchant("merchant-a"),
	)

	_, err := client.Get(t.Context(), "/v2/payments/1")
	require.NoError(t, err)
	require.Equal(t, "merchant-a", transport.headers[httpclient.HeaderAssumeMerchant])

	client.SetAssumeMerchant("merchant-b")

	_, err = client.Get(t.Context(), "/v2/payments/1")
	require.NoError(t, err)
	require.Equal(t, "merchant-b", transport.headers[httpclient.HeaderAssumeMerchant])
	require.Equal(t, "merchant-b", client.AssumeMerchant())
}

func TestWithRequestHeader_CannotOverrideAuthorization(t *testing.T) {
	t.Parallel()

	transport := okTransport()
	client := newTestClient(t, "https://api.example.com", httpclient.WithTransport(transport))

	_, err := client.Get(t.Context(), "/v2/payments/1",
		httpclient.WithRequestHeader("X-Trace", "trace-1"),
		httpclient.WithRequestHeader(httpclient.HeaderAuthorization, "forged"),
	)
	require.NoError(t, err)

	require.Equal(t, "trace-1", transport.headers["X-Trace"])
	require.NotEqual(t, "forged", transport.headers[httpclient.HeaderAuthorization])
}

func TestWithRequestHeader_CannotOverrideSignedHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		body   any
		key    string
		value  string
		expect string
		header string
	}{
		{
			name:   "content type on a bodyless request",
			method: http.MethodGet,
			body:   nil,
			key:    "Content-Type",
			value:  "application/xml",
			expect: "",
			header: "Content-Type",
		},
		{
			name:   "lowercase content type on a body",
			method: http.MethodPost,
			body:   map[string]int{"a": 1},
			key:    "content-type",
			value:  "text/plain",
			expect: opaauth.ContentTypeJSON,
			header: "Content-Type",
		},
		{
			name:   "lowercase authorization",
			method: http.MethodGet,
			body:   nil,
			key:    "authorization",
			value:  "forged",
			expect: "",
			header: "",
		},
		{
			name:   "assume merchant without configured merchant",
			method: http.MethodGet,
			body:   nil,
			key:    "x-assume-merchant",
			value:  "merchant-x",
			expect: "",
			header: "X-Assume-Merchant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var (
				gotAuth   string
				gotHeader string
				gotBody   []byte
			)

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				if tt.header != "" {
					gotHeader = r.Header.Get(tt.header)
				}

				gotBody, _ = io.ReadAll(r.Body)

				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)

			_, err := client.Do(t.Context(), tt.method, "/v2/payments/1", tt.body,
				httpclient.WithRequestHeader(tt.key, tt.value),
			)
			require.NoError(t, err)

			var wireBody []byte
			if len(gotBody) > 0 {
				wireBody = gotBody
			}

			assert.Equal(t, expectedHeader(t, tt.method, "/v2/payments/1", wireBody), gotAuth)
			assert.Equal(t, tt.expect, gotHeader)
		})
	}
}

func TestClient_RawBodyIsSentVerbatim(t *testing.T) {
	t.Parallel()

	transport := okTransport()
	client := newTestClient(t, "https://api.example.com", httpclient.WithTransport(transport))

	raw := json.RawMessage(`{"b": 2,  "a": 1}`)

	_, err := client.Put(t.Context(), "/v1/things", raw)
	require.NoError(t, err)

	require.Equal(t, []byte(raw), transport.body)
	require.Equal(t, expectedHeader(t, http.MethodPut, "/v1/things", raw),
		transport.headers[httpclient.HeaderAuthorization])
}

func TestClient_PatchSendsSignedBody(t *testing.T) {
	t.Parallel()

	transport := okTransport()
	client := newTestClient(t, "https://api.example.com", httpclient.WithTransport(transport))

	_, err := client.Patch(t.Context(), "/v1/things/1", map[string]string{"name": "x"})
	require.NoError(t, err)

	require.JSONEq(t, `{"name":"x"}`, string(transport.body))
	require.Equal(t, opaauth.ContentTypeJSON, transport.headers[httpclient.HeaderContentType])
}

func TestClient_ReturnsErrEncodeBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "https://api.example.com", httpclient.WithTransport(okTransport()))

	_, err := client.Post(t.Context(), "/v2/payments", map[string]any{"bad": make(chan int)})

	require.ErrorIs(t, err, httpclient.ErrEncodeBody)
}

func TestClient_ReturnsErrTransportOnCollaboratorFailure(t *testing.T) {
	t.Parallel()

	transport := okTransport()
	transport.response = nil
	transport.err = errConnectionReset

	client := newTestClient(t, "https://api.example.com", httpclient.WithTransport(transport))

	_, err := client.Get(t.Context(), "/v2/payments/1")

	require.ErrorIs(t, err, httpclient.ErrTransport)
	require.ErrorIs(t, err, errConnectionReset)
}

func TestClient_ReturnsErrTransportOnNetworkError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "http://invalid-host-that-does-not-exist.local")

	_, err := client.Get(t.Context(), "/v2/payments/1")

	require.ErrorIs(t, err, httpclient.ErrTransport)
}

func TestWithTimeout_SetsTransportTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, httpclient.WithTimeout(10*time.Millisecond))

	_, err := client.Get(t.Context(), "/test")

	require.ErrorIs(t, err, httpclient.ErrTransport)
}

func TestWithHTTPClient_UsesProvidedClient(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, httpclient.WithHTTPClient(server.Client()))

	resp, err := client.Get(t.Context(), "/test")

	require.NoError(t, err)
	require.True(t, resp.Found())
	require.Empty(t, resp.Body)
}

func TestClient_NotFoundIsNotAnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"resultInfo":{"code":"DYNAMIC_QR_NOT_FOUND"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	resp, err := client.Get(t.Context(), "/v2/codes/payments/missing")

	require.NoError(t, err)
	require.False(t, resp.Found())
}

func TestClient_UnclassifiedErrorCarriesResolutionHint(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"resultInfo":{"code":"INVALID_PARAMS","message":"bad","codeId":"08100006"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.Post(t.Context(), "/v2/payments", map[string]int{"a": 1},
		httpclient.WithAPIName("v2_createPayment"))

	providerErr, ok := httpclient.IsProviderError(err)
	require.True(t, ok)
	require.ErrorIs(t, err, httpclient.ErrUnclassified)
	require.Equal(t, http.StatusBadRequest, providerErr.StatusCode)
	require.Equal(t, "INVALID_PARAMS", providerErr.ResultInfo.Code)
	require.Equal(t,
		"https://developer.paypay.ne.jp/develop/resolve?api_name=v2_createPayment&code=INVALID_PARAMS&codeId=08100006",
		providerErr.ResolutionHint,
	)
}

func TestClient_ConcurrentRequestsUseIndependentNonces(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		headers = make(map[string]struct{})
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		headers[r.Header.Get("Authorization")] = struct{}{}
		mu.Unlock()

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := httpclient.New(server.URL, testCredentials(), httpclient.WithLogger(nil))
	require.NoError(t, err)

	var wg sync.WaitGroup

	for range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := client.Get(t.Context(), "/v2/payments/1")
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	require.Len(t, headers, 10)
}
