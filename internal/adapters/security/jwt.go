package security

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

const tokenIssuer = "sports-news-dashboard"

// JWTSigner signs and verifies RS256 session tokens.
type JWTSigner struct {
	kid        string
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

// NewJWTSigner builds a signer from a PEM encoded RSA private key; the public
// half is derived from it.
func NewJWTSigner(kid, privateKeyPEM string) (*JWTSigner, error) {
	if kid == "" {
		return nil, errors.New("jwt key id (kid) is required")
	}
	if privateKeyPEM == "" {
		return nil, errors.New("jwt private key is required")
	}
	priv, err := parseRSAPrivate(privateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return &JWTSigner{kid: kid, privateKey: priv, publicKey: &priv.PublicKey}, nil
}

// NewEphemeralJWTSigner generates an in-memory keypair. Tokens do not survive
// a restart.
func NewEphemeralJWTSigner(kid string) (*JWTSigner, error) {
	if kid == "" {
		kid = "ephemeral-key-1"
	}
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	return &JWTSigner{kid: kid, privateKey: privateKey, publicKey: &privateKey.PublicKey}, nil
}

type sessionClaims struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

func (s *JWTSigner) Sign(claims ports.AuthClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, sessionClaims{
		Username:  claims.Username,
		Role:      claims.Role,
		SessionID: claims.SessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   claims.SubjectID,
			ID:        claims.SessionID,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})
	token.Header["kid"] = s.kid
	return token.SignedString(s.privateKey)
}

func (s *JWTSigner) ParseAndValidate(raw string) (ports.AuthClaims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &sessionClaims{}, func(*jwt.Token) (any, error) {
		return s.publicKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30*time.Second),
	)
	if err != nil {
		return ports.AuthClaims{}, err
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return ports.AuthClaims{}, errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return ports.AuthClaims{}, errors.New("token has no subject")
	}

	kid, _ := parsed.Header["kid"].(string)
	out := ports.AuthClaims{
		SubjectID: claims.Subject,
		Username:  claims.Username,
		Role:      claims.Role,
		SessionID: claims.SessionID,
		KeyID:     kid,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return out, nil
}

func parseRSAPrivate(raw string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(raw))
	if block == nil {
		return nil, errors.New("invalid private PEM")
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	keyAny, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := keyAny.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not RSA")
	}
	return key, nil
}
