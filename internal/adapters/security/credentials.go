package security

import (
	"fmt"
	"strings"

	"github.com/arceusss10/sports-news-dashboard/internal/domain"
	"github.com/arceusss10/sports-news-dashboard/internal/ports"
)

// UserEntry is one configured dashboard login. Password is hashed at
// startup; PasswordHash wins when both are set.
type UserEntry struct {
	SubjectID    string `yaml:"subject_id" toml:"subject_id"`
	Username     string `yaml:"username" toml:"username"`
	Password     string `yaml:"password" toml:"password"`
	PasswordHash string `yaml:"password_hash" toml:"password_hash"`
	Role         string `yaml:"role" toml:"role"`
}

// DevUsers are the demo logins used when no users are configured.
func DevUsers() []UserEntry {
	return []UserEntry{
		{SubjectID: "1", Username: "admin", Password: "admin123", Role: string(domain.RoleAdmin)},
		{SubjectID: "2", Username: "user", Password: "user123", Role: string(domain.RoleUser)},
	}
}

// StaticCredentialStore is a read-only username index built once at startup.
type StaticCredentialStore struct {
	byUsername map[string]ports.Credential
}

func NewStaticCredentialStore(entries []UserEntry, hasher ports.PasswordHasher) (*StaticCredentialStore, error) {
	store := &StaticCredentialStore{byUsername: make(map[string]ports.Credential, len(entries))}
	for _, entry := range entries {
		username := strings.ToLower(strings.TrimSpace(entry.Username))
		if username == "" {
			return nil, fmt.Errorf("credential entry without username")
		}
		if _, dup := store.byUsername[username]; dup {
			return nil, fmt.Errorf("duplicate credential for %q", username)
		}
		hash := entry.PasswordHash
		if hash == "" {
			if entry.Password == "" {
				return nil, fmt.Errorf("credential %q has no password", username)
			}
			hashed, err := hasher.Hash(entry.Password)
			if err != nil {
				return nil, fmt.Errorf("hash password for %q: %w", username, err)
			}
			hash = hashed
		}
		role := domain.ParseRole(entry.Role)
		if role == domain.RoleAnonymous {
			role = domain.RoleUser
		}
		subject := entry.SubjectID
		if subject == "" {
			subject = username
		}
		store.byUsername[username] = ports.Credential{
			SubjectID:    subject,
			Username:     username,
			PasswordHash: hash,
			Role:         string(role),
		}
	}
	return store, nil
}

func (s *StaticCredentialStore) Lookup(username string) (ports.Credential, bool) {
	cred, ok := s.byUsername[strings.ToLower(strings.TrimSpace(username))]
	return cred, ok
}
