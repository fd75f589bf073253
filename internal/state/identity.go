package state

import (
	"strings"
	"time"
)

// Identity is the saved platform identity and, when the credential policy
// allows it, the platform session credential.
type Identity struct {
	Username     string
	Credential   string
	CredentialAt time.Time
}

type usernameRecord struct {
	Username string    `json:"username"`
	SavedAt  time.Time `json:"saved_at"`
}

type cookieRecord struct {
	Cookie  string    `json:"cookie"`
	SavedAt time.Time `json:"saved_at"`
}

// CredentialPolicy controls whether and for how long credentials are kept.
type CredentialPolicy struct {
	// Persist enables writing the credential to disk.
	Persist bool
	// TTL discards saved credentials older than this. Zero keeps them forever.
	TTL time.Duration
}

// IdentityStore persists identity and credential under their own keys,
// independent of any contest.
type IdentityStore struct {
	store  *Store
	policy CredentialPolicy
	now    func() time.Time
}

// NewIdentityStore wraps store with the given credential policy.
func NewIdentityStore(store *Store, policy CredentialPolicy) *IdentityStore {
	return &IdentityStore{store: store, policy: policy, now: time.Now}
}

// SaveIdentity records the username and, per policy, the credential.
func (s *IdentityStore) SaveIdentity(username, credential string) error {
	now := s.now()
	return s.store.Update(func(st *Store) error {
		if err := st.Put(KeyUsername, usernameRecord{Username: strings.TrimSpace(username), SavedAt: now}); err != nil {
			return err
		}
		if !s.policy.Persist || strings.TrimSpace(credential) == "" {
			return st.Delete(KeyCookie)
		}
		return st.PutPrivate(KeyCookie, cookieRecord{Cookie: strings.TrimSpace(credential), SavedAt: now})
	})
}

// LoadIdentity returns the saved identity. Expired or disallowed credentials
// are removed and omitted.
func (s *IdentityStore) LoadIdentity() (Identity, error) {
	var identity Identity

	var user usernameRecord
	if _, err := s.store.Get(KeyUsername, &user); err != nil {
		return identity, err
	}
	identity.Username = user.Username

	var cookie cookieRecord
	found, err := s.store.Get(KeyCookie, &cookie)
	if err != nil || !found {
		return identity, err
	}
	if !s.policy.Persist || s.expired(cookie.SavedAt) {
		return identity, s.store.Delete(KeyCookie)
	}
	identity.Credential = cookie.Cookie
	identity.CredentialAt = cookie.SavedAt
	return identity, nil
}

// ForgetCredential removes any saved credential.
func (s *IdentityStore) ForgetCredential() error {
	return s.store.Delete(KeyCookie)
}

func (s *IdentityStore) expired(savedAt time.Time) bool {
	if s.policy.TTL <= 0 {
		return false
	}
	return s.now().Sub(savedAt) > s.policy.TTL
}
