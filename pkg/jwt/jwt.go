package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenNotYetValid = errors.New("token not yet valid")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidKey       = errors.New("invalid key")
)

// Claims represents JWT claims
type Claims struct {
	gojwt.RegisteredClaims

	// Custom claims
	Email    string `json:"email,omitempty"`
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
}

// Identity returns the caller id carried by the token: user_id, else sub
func (c *Claims) Identity() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// Service signs and validates tokens
type Service struct {
	method     gojwt.SigningMethod
	signKey    interface{}
	verifyKey  interface{}
	issuer     string
	expiration time.Duration
}

// Config holds JWT service configuration.
// When Secret is set tokens use HS256, otherwise RS256 with the PEM key files.
type Config struct {
	PrivateKeyPath string
	PublicKeyPath  string
	Secret         string
	Issuer         string
	ExpirationMins int
}

// NewService creates a new JWT service
func NewService(cfg Config) (*Service, error) {
	expiration := time.Duration(cfg.ExpirationMins) * time.Minute

	if cfg.Secret != "" {
		return NewHMACService([]byte(cfg.Secret), cfg.Issuer, expiration), nil
	}

	s := &Service{
		method:     gojwt.SigningMethodRS256,
		issuer:     cfg.Issuer,
		expiration: expiration,
	}

	if cfg.PrivateKeyPath != "" {
		privateKey, err := loadPrivateKey(cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load private key: %w", err)
		}
		s.signKey = privateKey
		s.verifyKey = &privateKey.PublicKey
	}

	// Validation-only deployments ship just the public key
	if cfg.PublicKeyPath != "" && s.verifyKey == nil {
		publicKey, err := loadPublicKey(cfg.PublicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load public key: %w", err)
		}
		s.verifyKey = publicKey
	}

	return s, nil
}

// NewRSAService creates an RS256 service from an in-memory key
func NewRSAService(privateKey *rsa.PrivateKey, issuer string, expiration time.Duration) *Service {
	return &Service{
		method:     gojwt.SigningMethodRS256,
		signKey:    privateKey,
		verifyKey:  &privateKey.PublicKey,
		issuer:     issuer,
		expiration: expiration,
	}
}

// NewHMACService creates an HS256 service sharing one secret for signing and validation
func NewHMACService(secret []byte, issuer string, expiration time.Duration) *Service {
	return &Service{
		method:     gojwt.SigningMethodHS256,
		signKey:    secret,
		verifyKey:  secret,
		issuer:     issuer,
		expiration: expiration,
	}
}

// GenerateKeyPair generates a new RSA key pair and saves to files
func GenerateKeyPair(privateKeyPath, publicKeyPath string) error {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	privateBytes := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})
	if err := os.WriteFile(privateKeyPath, privateBytes, 0600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to marshal public key: %w", err)
	}
	publicBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})
	if err := os.WriteFile(publicKeyPath, publicBytes, 0644); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}

	return nil
}

// Sign creates a signed token. Issuer and time claims are filled in when unset.
func (s *Service) Sign(claims Claims) (string, error) {
	if s.signKey == nil {
		return "", fmt.Errorf("%w: no signing key configured", ErrInvalidKey)
	}

	now := time.Now()
	if claims.Issuer == "" {
		claims.Issuer = s.issuer
	}
	if claims.Subject == "" {
		claims.Subject = claims.UserID
	}
	if claims.IssuedAt == nil {
		claims.IssuedAt = gojwt.NewNumericDate(now)
	}
	if claims.NotBefore == nil {
		claims.NotBefore = gojwt.NewNumericDate(now)
	}
	if claims.ExpiresAt == nil && s.expiration > 0 {
		claims.ExpiresAt = gojwt.NewNumericDate(now.Add(s.expiration))
	}

	token := gojwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.signKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token and returns its claims
func (s *Service) Validate(tokenString string) (*Claims, error) {
	if s.verifyKey == nil {
		return nil, fmt.Errorf("%w: no verification key configured", ErrInvalidKey)
	}

	opts := []gojwt.ParserOption{gojwt.WithValidMethods([]string{s.method.Alg()})}
	if s.issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	_, err := gojwt.ParseWithClaims(tokenString, claims, func(*gojwt.Token) (interface{}, error) {
		return s.verifyKey, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, gojwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, gojwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	}

	if claims.Identity() == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}

// ValidateAccessToken validates a bearer token presented to the API
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.Validate(tokenString)
}

// GetExpiration returns the configured token lifetime
func (s *Service) GetExpiration() time.Duration {
	return s.expiration
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key, err := gojwt.ParseRSAPrivateKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return key, nil
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key, err := gojwt.ParseRSAPublicKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return key, nil
}
