package main

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
)

type schemaRecord struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Type              string         `json:"type"`
	Version           int            `json:"version"`
	CredentialSubject map[string]any `json:"credentialSubject,omitempty"`
}

type offeringRecord struct {
	ID                string         `json:"id"`
	URL               string         `json:"url"`
	CredentialType    string         `json:"credential_type"`
	CredentialSubject map[string]any `json:"credential_subject"`
	Recipient         string         `json:"recipient,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
}

// store keeps everything in memory. Challenges, codes and tokens are single
// use.
type store struct {
	mu         sync.Mutex
	schemas    []schemaRecord
	offerings  map[string]offeringRecord
	challenges map[string]string
	codes      map[string]string
	tokens     map[string]string
}

func newStore() *store {
	return &store{
		offerings:  make(map[string]offeringRecord),
		challenges: make(map[string]string),
		codes:      make(map[string]string),
		tokens:     make(map[string]string),
	}
}

// addSchema stores a schema; the version is one above the latest of its type.
func (s *store) addSchema(name, schemaType string, subject map[string]any) schemaRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	version := 1
	for _, existing := range s.schemas {
		if existing.Type == schemaType && existing.Version >= version {
			version = existing.Version + 1
		}
	}
	rec := schemaRecord{
		ID:                uuid.NewString(),
		Name:              name,
		Type:              schemaType,
		Version:           version,
		CredentialSubject: subject,
	}
	s.schemas = append(s.schemas, rec)
	return rec
}

func (s *store) listSchemas() []schemaRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]schemaRecord{}, s.schemas...)
}

func (s *store) schema(id string) (schemaRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.schemas {
		if rec.ID == id {
			return rec, true
		}
	}
	return schemaRecord{}, false
}

func (s *store) deleteSchema(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.schemas {
		if rec.ID == id {
			s.schemas = append(s.schemas[:i], s.schemas[i+1:]...)
			return true
		}
	}
	return false
}

func (s *store) addOffering(baseURL, credentialType string, subject map[string]any, recipient string) offeringRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	rec := offeringRecord{
		ID:                id,
		URL:               baseURL + "/offer/" + id,
		CredentialType:    credentialType,
		CredentialSubject: subject,
		Recipient:         recipient,
		CreatedAt:         time.Now().UTC(),
	}
	s.offerings[id] = rec
	return rec
}

func (s *store) offering(id string) (offeringRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.offerings[id]
	return rec, ok
}

func (s *store) newChallenge(did string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	challenge := randomHex(32)
	s.challenges[challenge] = did
	return challenge
}

// redeemChallenge trades a challenge for an authorization code.
func (s *store) redeemChallenge(challenge string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	did, ok := s.challenges[challenge]
	if !ok {
		return "", false
	}
	delete(s.challenges, challenge)
	code := randomHex(16)
	s.codes[code] = did
	return code, true
}

// redeemCode trades an authorization code for an access token.
func (s *store) redeemCode(code string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	did, ok := s.codes[code]
	if !ok {
		return "", false
	}
	delete(s.codes, code)
	token := randomHex(24)
	s.tokens[token] = did
	return token, true
}

func (s *store) tokenSubject(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	did, ok := s.tokens[token]
	return did, ok
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
