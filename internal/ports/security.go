package ports

import "time"

type AuthClaims struct {
	SubjectID string    `json:"sub"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	SessionID string    `json:"session_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	KeyID     string    `json:"kid"`
}

type TokenSigner interface {
	Sign(claims AuthClaims) (string, error)
	ParseAndValidate(token string) (AuthClaims, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Credential is a configured login with its bcrypt hash.
type Credential struct {
	SubjectID    string
	Username     string
	PasswordHash string
	Role         string
}

type CredentialStore interface {
	Lookup(username string) (Credential, bool)
}
