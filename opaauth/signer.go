package opaauth

import (
	"crypto/hmac"
	"crypto/md5" //nolint:gosec // the OPA-Auth scheme mandates MD5 for the body digest
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	AuthType         = "hmac OPA-Auth"
	ContentTypeEmpty = "empty"
	ContentTypeJSON  = "application/json;charset=UTF-8"
	EmptyBodyDigest  = "empty"
	NonceLength      = 8
)

var (
	ErrInvalidCredentials = errors.New("opaauth: invalid credentials")
	ErrInvalidRequest     = errors.New("opaauth: invalid request descriptor")
)

type Credentials struct {
	APIKey    string
	APISecret string
}

func (c Credentials) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%w: api key is empty", ErrInvalidCredentials)
	}

	if c.APISecret == "" {
		return fmt.Errorf("%w: api secret is empty", ErrInvalidCredentials)
	}

	// The key is a field of a colon-delimited header.
	if strings.Contains(c.APIKey, ":") {
		return fmt.Errorf("%w: api key must not contain ':'", ErrInvalidCredentials)
	}

	return nil
}

// String never exposes the secret.
func (c Credentials) String() string {
	return "Credentials{APIKey: " + c.APIKey + ", APISecret: ***}"
}

// Request describes the parts of an HTTP request covered by the signature.
// Path excludes host and query string. Body holds the exact bytes sent on
// the wire and must be nil exactly when ContentType is ContentTypeEmpty.
type Request struct {
	Method      string
	Path        string
	ContentType string
	Body        *string
}

func NewRequest(method, path string, body []byte) Request {
	if body == nil {
		return Request{
			Method:      method,
			Path:        path,
			ContentType: ContentTypeEmpty,
			Body:        nil,
		}
	}

	raw := string(body)

	return Request{
		Method:      method,
		Path:        path,
		ContentType: ContentTypeJSON,
		Body:        &raw,
	}
}

func (r Request) Validate() error {
	if r.Body != nil && r.ContentType == ContentTypeEmpty {
		return fmt.Errorf("%w: body present with %q content type", ErrInvalidRequest, ContentTypeEmpty)
	}

	if r.Body == nil && r.ContentType != ContentTypeEmpty {
		return fmt.Errorf("%w: content type %q without body", ErrInvalidRequest, r.ContentType)
	}

	return nil
}

func NewNonce() string {
	return uuid.New().String()[:NonceLength]
}

func BodyDigest(contentType string, body *string) string {
	if body == nil {
		return EmptyBodyDigest
	}

	hash := md5.New() //nolint:gosec
	hash.Write([]byte(contentType))
	hash.Write([]byte(*body))

	return base64.StdEncoding.EncodeToString(hash.Sum(nil))
}

func CanonicalString(req Request, nonce, timestamp, bodyDigest string) string {
	return strings.Join([]string{
		req.Path,
		strings.ToUpper(req.Method),
		nonce,
		timestamp,
		req.ContentType,
		bodyDigest,
	}, "\n")
}

// Header computes the Authorization header value for req with a caller
// supplied nonce and timestamp. The result is deterministic.
func Header(creds Credentials, req Request, nonce, timestamp string) (string, error) {
	if err := creds.Validate(); err != nil {
		return "", err
	}

	if err := req.Validate(); err != nil {
		return "", err
	}

	digest := BodyDigest(req.ContentType, req.Body)

	mac := hmac.New(sha256.New, []byte(creds.APISecret))
	mac.Write([]byte(CanonicalString(req, nonce, timestamp, digest)))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return AuthType + ":" + strings.Join([]string{
		creds.APIKey,
		signature,
		nonce,
		timestamp,
		digest,
	}, ":"), nil
}

type Signer struct {
	creds Credentials
	nonce func() string
	now   func() time.Time
}

type Option func(*Signer)

func WithNonceFunc(fn func() string) Option {
	return func(s *Signer) {
		if fn != nil {
			s.nonce = fn
		}
	}
}

func WithClock(fn func() time.Time) Option {
	return func(s *Signer) {
		if fn != nil {
			s.now = fn
		}
	}
}

func NewSigner(creds Credentials, opts ...Option) (*Signer, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	signer := &Signer{
		creds: creds,
		nonce: NewNonce,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(signer)
	}

	return signer, nil
}

// Sign produces a single-use header value with a fresh nonce and timestamp.
func (s *Signer) Sign(req Request) (string, error) {
	timestamp := strconv.FormatInt(s.now().Unix(), 10)

	return Header(s.creds, req, s.nonce(), timestamp)
}
