package store

import (
	"context"
	"encoding/json"
	"log"

	"github.com/diegomolina2/appreset/internal/state"
)

// Storage keys, one logical record each.
const (
	UserDataKey = "user_data"
	// LegacyUserDataKey is the deprecated key older clients wrote under. A
	// record found there is migrated to UserDataKey once and removed.
	LegacyUserDataKey = "userData"
	PlanKey           = "userPlan"
	SettingsKey       = "app_settings"
)

// KV is the key-value record store a device's documents live in.
type KV interface {
	Get(ctx context.Context, deviceID, key string) ([]byte, bool, error)
	Set(ctx context.Context, deviceID, key string, value []byte) error
	Delete(ctx context.Context, deviceID, key string) error
}

// Store persists user documents. Reads degrade to defaults and writes are
// fire-and-forget: a storage failure is logged and the in-memory state stays
// authoritative for the session.
type Store struct {
	kv KV
}

func New(kv KV) *Store {
	return &Store{kv: kv}
}

// LoadUserData reads the device's document, migrating the legacy key if
// needed. Missing records, read errors and malformed documents all fall back
// to the default document.
func (s *Store) LoadUserData(ctx context.Context, deviceID string) *state.UserData {
	raw, ok, err := s.kv.Get(ctx, deviceID, UserDataKey)
	if err != nil {
		log.Printf("store: failed to read user data for %s: %v", deviceID, err)
		return state.DefaultUserData()
	}
	if ok {
		return decodeUserData(raw)
	}

	raw, ok, err = s.kv.Get(ctx, deviceID, LegacyUserDataKey)
	if err != nil {
		log.Printf("store: failed to read legacy user data for %s: %v", deviceID, err)
		return state.DefaultUserData()
	}
	if !ok {
		return state.DefaultUserData()
	}

	data := decodeUserData(raw)
	s.SaveUserData(ctx, deviceID, data)
	if err := s.kv.Delete(ctx, deviceID, LegacyUserDataKey); err != nil {
		log.Printf("store: failed to remove legacy key for %s: %v", deviceID, err)
	}
	return data
}

// SaveUserData writes the document. Failures are logged, never surfaced.
func (s *Store) SaveUserData(ctx context.Context, deviceID string, data *state.UserData) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("store: failed to encode user data for %s: %v", deviceID, err)
		return
	}
	if err := s.kv.Set(ctx, deviceID, UserDataKey, raw); err != nil {
		log.Printf("store: failed to save user data for %s: %v", deviceID, err)
	}
}

// LoadRecord reads an auxiliary record (for example the plan record) into
// out. Returns false when the record is missing or unreadable.
func (s *Store) LoadRecord(ctx context.Context, deviceID, key string, out any) bool {
	raw, ok, err := s.kv.Get(ctx, deviceID, key)
	if err != nil {
		log.Printf("store: failed to read %s for %s: %v", key, deviceID, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("store: malformed %s record for %s: %v", key, deviceID, err)
		return false
	}
	return true
}

// SaveRecord writes an auxiliary record, logging failures.
func (s *Store) SaveRecord(ctx context.Context, deviceID, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("store: failed to encode %s for %s: %v", key, deviceID, err)
		return
	}
	if err := s.kv.Set(ctx, deviceID, key, raw); err != nil {
		log.Printf("store: failed to save %s for %s: %v", key, deviceID, err)
	}
}

// DeleteRecord removes an auxiliary record, logging failures.
func (s *Store) DeleteRecord(ctx context.Context, deviceID, key string) {
	if err := s.kv.Delete(ctx, deviceID, key); err != nil {
		log.Printf("store: failed to delete %s for %s: %v", key, deviceID, err)
	}
}

func decodeUserData(raw []byte) *state.UserData {
	data := state.DefaultUserData()
	if err := json.Unmarshal(raw, data); err != nil {
		log.Printf("store: malformed user data document, falling back to defaults: %v", err)
		return state.DefaultUserData()
	}
	if data.Challenges == nil {
		data.Challenges = map[string]*state.Challenge{}
	}
	return data
}
