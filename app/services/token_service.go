// Package services provides external service integrations and technical concerns like mail and tokens
package services

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/casinoradar/casinoradar/utils"
	"github.com/golang-jwt/jwt/v5"
)

// Token service error constants
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// TokenService validates session tokens issued by the hosted auth provider.
// This service never issues end-user tokens; GenerateSessionToken exists for
// local development and test fixtures only.
type TokenService interface {
	ValidateSessionToken(token string) (*SessionClaims, error)
	GenerateSessionToken(userID, email string, ttl time.Duration) (string, error)
}

// SessionClaims is the subset of provider claims the API relies on
type SessionClaims struct {
	Subject   string    `json:"sub"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	TokenID   string    `json:"jti"`
}

// TokenServiceImpl implements TokenService
type TokenServiceImpl struct {
	signingMethod jwt.SigningMethod
	publicKey     *rsa.PublicKey
	privateKey    *rsa.PrivateKey
	secretKey     []byte
	useRSAKeys    bool
	issuer        string
	audience      string
}

// NewTokenService creates a new token service. With useRSAKeys the provider's
// public key verifies signatures; otherwise a shared secret is used.
func NewTokenService(issuer, audience string, useRSAKeys bool, publicKeyPEM, privateKeyPEM, secretKey string) (TokenService, error) {
	var publicKey *rsa.PublicKey
	var privateKey *rsa.PrivateKey
	var secretKeyBytes []byte
	var signingMethod jwt.SigningMethod

	if useRSAKeys {
		var err error
		publicKey, err = parseRSAPublicKey(publicKeyPEM)
		if err != nil {
			return nil, fmt.Errorf("failed to parse public key: %w", err)
		}
		if privateKeyPEM != "" {
			privateKey, err = parseRSAPrivateKey(privateKeyPEM)
			if err != nil {
				return nil, fmt.Errorf("failed to parse private key: %w", err)
			}
		}
		signingMethod = jwt.SigningMethodRS256
	} else {
		if secretKey == "" {
			return nil, fmt.Errorf("secret key is required when not using RSA keys")
		}
		secretKeyBytes = []byte(secretKey)
		signingMethod = jwt.SigningMethodHS256
	}

	return &TokenServiceImpl{
		signingMethod: signingMethod,
		publicKey:     publicKey,
		privateKey:    privateKey,
		secretKey:     secretKeyBytes,
		useRSAKeys:    useRSAKeys,
		issuer:        issuer,
		audience:      audience,
	}, nil
}

func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, fmt.Errorf("failed to decode public key")
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	rsaPublicKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is not RSA")
	}
	return rsaPublicKey, nil
}

func parseRSAPrivateKey(privateKeyPEM string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(privateKeyPEM))
	if block == nil {
		return nil, fmt.Errorf("failed to decode private key")
	}
	return x509.ParsePKCS1PrivateKey(block.Bytes)
}

// ValidateSessionToken validates a provider session token and returns its claims
func (s *TokenServiceImpl) ValidateSessionToken(token string) (*SessionClaims, error) {
	var err error
	var parsedToken *jwt.Token

	if s.useRSAKeys {
		parsedToken, err = jwt.Parse(token, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.publicKey, nil
		})
	} else {
		parsedToken, err = jwt.Parse(token, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secretKey, nil
		})
	}

	if err != nil {
		if strings.Contains(err.Error(), "expired") || strings.Contains(err.Error(), "exp") {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsedToken.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return nil, ErrTokenInvalid
	}

	// Optional claims are tolerated missing; the provider does not always
	// include email for machine principals.
	email, _ := claims["email"].(string)
	tokenID, _ := claims["jti"].(string)

	issuedAt, ok := claims["iat"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}
	expiresAt, ok := claims["exp"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}
	if utils.UTCNow().After(time.Unix(int64(expiresAt), 0)) {
		return nil, ErrTokenExpired
	}

	if s.issuer != "" {
		issuer, _ := claims["iss"].(string)
		if issuer != s.issuer {
			return nil, ErrTokenInvalid
		}
	}

	return &SessionClaims{
		Subject:   subject,
		Email:     email,
		TokenID:   tokenID,
		IssuedAt:  time.Unix(int64(issuedAt), 0),
		ExpiresAt: time.Unix(int64(expiresAt), 0),
	}, nil
}

// GenerateSessionToken signs a session token locally. Development and test
// fixture use only; production tokens come from the auth provider.
func (s *TokenServiceImpl) GenerateSessionToken(userID, email string, ttl time.Duration) (string, error) {
	now := utils.UTCNow()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
		"iss":   s.issuer,
		"aud":   s.audience,
	}

	token := jwt.NewWithClaims(s.signingMethod, claims)
	if s.useRSAKeys {
		if s.privateKey == nil {
			return "", fmt.Errorf("private key not configured for local signing")
		}
		return token.SignedString(s.privateKey)
	}
	return token.SignedString(s.secretKey)
}
