package testutil

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/andyle182810/paypayopa/opaauth"
)

var ErrBadAuthHeader = errors.New("testutil: bad authorization header")

const authFieldCount = 6

// RecordedRequest keeps the path in its escaped form, as it was signed.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

type route struct {
	status int
	body   string
}

// FakeServer stands in for the PayPay API. Every request is recorded and its
// OPA-Auth header checked against creds; a bad header is answered with 401.
type FakeServer struct {
	*httptest.Server

	creds    opaauth.Credentials
	mu       sync.Mutex
	routes   map[string]route
	requests []RecordedRequest
}

func NewFakeServer(t *testing.T, creds opaauth.Credentials) *FakeServer {
	t.Helper()

	fake := &FakeServer{
		Server:   nil,
		creds:    creds,
		mu:       sync.Mutex{},
		routes:   make(map[string]route),
		requests: nil,
	}

	fake.Server = httptest.NewServer(http.HandlerFunc(fake.serve))
	t.Cleanup(fake.Close)

	return fake
}

// Handle registers the canned reply for method and path. Unregistered routes
// answer 404.
func (s *FakeServer) Handle(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.routes[method+" "+path] = route{status: status, body: body}
}

func (s *FakeServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)

	return out
}

func (s *FakeServer) LastRequest(t *testing.T) RecordedRequest {
	t.Helper()

	requests := s.Requests()
	if len(requests) == 0 {
		t.Fatal("fake server received no requests")
	}

	return requests[len(requests)-1]
}

func (s *FakeServer) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	path := r.URL.EscapedPath()

	recorded := RecordedRequest{
		Method:   r.Method,
		Path:     path,
		RawQuery: r.URL.RawQuery,
		Header:   r.Header.Clone(),
		Body:     body,
	}

	s.mu.Lock()
	s.requests = append(s.requests, recorded)
	reply, ok := s.routes[r.Method+" "+path]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if err := VerifyAuthHeader(s.creds, recorded); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = fmt.Fprintf(w, `{"resultInfo":{"code":"UNAUTHORIZED","message":%q,"codeId":"08100001"}}`, err.Error())

		return
	}

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"resultInfo":{"code":"DYNAMIC_QR_NOT_FOUND","message":"not found","codeId":"08100006"}}`)

		return
	}

	w.WriteHeader(reply.status)
	_, _ = io.WriteString(w, reply.body)
}

// VerifyAuthHeader recomputes the signature of req from its own nonce and
// timestamp and compares it with the Authorization header.
func VerifyAuthHeader(creds opaauth.Credentials, req RecordedRequest) error {
	header := req.Header.Get("Authorization")

	fields := strings.Split(strings.TrimPrefix(header, opaauth.AuthType+":"), ":")
	if !strings.HasPrefix(header, opaauth.AuthType+":") || len(fields) != authFieldCount-1 {
		return fmt.Errorf("%w: %q", ErrBadAuthHeader, header)
	}

	nonce, timestamp := fields[2], fields[3]

	var body []byte
	if len(req.Body) > 0 {
		body = req.Body
	}

	expected, err := opaauth.Header(creds, opaauth.NewRequest(req.Method, req.Path, body), nonce, timestamp)
	if err != nil {
		return err
	}

	if expected != header {
		return fmt.Errorf("%w: signature mismatch", ErrBadAuthHeader)
	}

	return nil
}
