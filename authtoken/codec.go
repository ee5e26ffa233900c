package authtoken

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidSecret      = errors.New("authtoken: secret is not valid base64")
	ErrVerificationFailed = errors.New("authtoken: token verification failed")
	ErrTokenExpired       = errors.New("authtoken: token expired")
	ErrAudienceMismatch   = errors.New("authtoken: audience mismatch")
	ErrBadSignature       = errors.New("authtoken: bad signature")
	ErrMalformedToken     = errors.New("authtoken: malformed token")
)

const (
	Issuer       = "merchant"
	DefaultScope = "direct_debit"
	TokenTTL     = 5 * time.Minute
	nonceLength  = 8
)

// Claims is the payload exchanged during the user authorization flow.
type Claims struct {
	Scope               string `json:"scope"`
	Nonce               string `json:"nonce"`
	RedirectURL         string `json:"redirectUrl"`
	ReferenceID         string `json:"referenceId"`
	DeviceID            string `json:"deviceId"`
	PhoneNumber         string `json:"phoneNumber"`
	UserAuthorizationID string `json:"userAuthorizationId,omitempty"`
	jwt.RegisteredClaims
}

type EncodeParams struct {
	Scope       string
	RedirectURL string
	ReferenceID string
	DeviceID    string
	PhoneNumber string
	// Audience is normally set by PayPay on the tokens it returns.
	Audience string
}

type Identity struct {
	UserAuthorizationID string
	ReferenceID         string
}

type Codec struct {
	secret []byte
	now    func() time.Time
	nonce  func() string
	logger *zerolog.Logger
}

func New(secret string, opts ...Option) (*Codec, error) {
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSecret, err)
	}

	codec := &Codec{
		secret: key,
		now:    time.Now,
		nonce:  shortToken,
		logger: &log.Logger,
	}

	for _, opt := range opts {
		opt(codec)
	}

	return codec, nil
}

func (c *Codec) Encode(params EncodeParams) (string, error) {
	scope := params.Scope
	if scope == "" {
		scope = DefaultScope
	}

	referenceID := params.ReferenceID
	if referenceID == "" {
		referenceID = c.nonce()
	}

	//nolint:exhaustruct
	registered := jwt.RegisteredClaims{
		Issuer:    Issuer,
		ExpiresAt: jwt.NewNumericDate(c.now().Add(TokenTTL)),
	}

	if params.Audience != "" {
		registered.Audience = jwt.ClaimStrings{params.Audience}
	}

	claims := Claims{
		Scope:               scope,
		Nonce:               c.nonce(),
		RedirectURL:         params.RedirectURL,
		ReferenceID:         referenceID,
		DeviceID:            params.DeviceID,
		PhoneNumber:         params.PhoneNumber,
		UserAuthorizationID: "",
		RegisteredClaims:    registered,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("authtoken: failed to sign token: %w", err)
	}

	return signed, nil
}

// Decode verifies token and returns the user authorization and reference ids.
func (c *Codec) Decode(clientID, token string) (Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(clientID),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)

	var claims Claims

	_, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		verr := fmt.Errorf("%w: %w", ErrVerificationFailed, classifyJWTError(err))

		if c.logger != nil {
			c.logger.Warn().Err(err).Str("client_id", clientID).Msg("JWT signature verification failed")
		}

		return Identity{}, verr
	}

	return Identity{
		UserAuthorizationID: claims.UserAuthorizationID,
		ReferenceID:         claims.ReferenceID,
	}, nil
}

func classifyJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrAudienceMismatch
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrBadSignature
	default:
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
}

func Encode(secret string, params EncodeParams) (string, error) {
	codec, err := New(secret)
	if err != nil {
		return "", err
	}

	return codec.Encode(params)
}

func Decode(clientID, secret, token string) (Identity, error) {
	codec, err := New(secret)
	if err != nil {
		return Identity{}, err
	}

	return codec.Decode(clientID, token)
}

func shortToken() string {
	return uuid.New().String()[:nonceLength]
}
