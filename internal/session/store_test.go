package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"admincore.org/internal/store"
)

func newTestStore(t *testing.T, kv store.KV) *Store {
	t.Helper()
	t.Setenv(secretEnvVariable, "test-secret")
	ResetSecretForTests()
	return NewStore(kv)
}

func TestLoginRejectsBlankCredentials(t *testing.T) {
	s := newTestStore(t, store.NewMemory())
	ctx := context.Background()

	if _, err := s.Login(ctx, "", ""); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
	if _, err := s.Login(ctx, "a@b.com", "   "); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential for blank secret, got %v", err)
	}
	if _, ok := s.Current(); ok {
		t.Fatal("no session should exist after failed login")
	}
}

func TestLoginPersistsAndRestores(t *testing.T) {
	kv := store.NewMemory()
	s := newTestStore(t, kv)
	ctx := context.Background()

	sess, err := s.Login(ctx, "Ana.Martinez@Example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Email != "ana.martinez@example.com" {
		t.Fatalf("email not normalized: %s", sess.Email)
	}
	if sess.Name != "ana.martinez" {
		t.Fatalf("unexpected display name: %s", sess.Name)
	}
	if sess.Role != RoleUser {
		t.Fatalf("unexpected role: %s", sess.Role)
	}
	if sess.Token == "" {
		t.Fatal("expected a bearer token")
	}
	if _, ok := s.Current(); !ok {
		t.Fatal("session should be live after login")
	}

	// A fresh store over the same KV simulates a new process instance.
	restored := NewStore(kv)
	got, ok := restored.Restore(ctx)
	if !ok {
		t.Fatal("expected session to restore")
	}
	if got.ID != sess.ID || got.Email != sess.Email || got.Token != sess.Token {
		t.Fatalf("restored session differs: %+v vs %+v", got, sess)
	}
}

func TestRestoreTreatsCorruptDataAsNoSession(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	_ = kv.Put(ctx, profileKey, "{not json")
	_ = kv.Put(ctx, tokenKey, "some-token")

	s := newTestStore(t, kv)
	if _, ok := s.Restore(ctx); ok {
		t.Fatal("corrupt profile must read as no session")
	}
	if !s.Restored() {
		t.Fatal("restore must be marked complete even on failure")
	}
}

func TestRestoreRequiresBothRecords(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	_ = kv.Put(ctx, profileKey, `{"id":"u1","email":"a@b.com","role":"user"}`)

	s := newTestStore(t, kv)
	if _, ok := s.Restore(ctx); ok {
		t.Fatal("missing token must read as no session")
	}
}

func TestRestoreRunsOnce(t *testing.T) {
	kv := store.NewMemory()
	s := newTestStore(t, kv)
	ctx := context.Background()

	if _, ok := s.Restore(ctx); ok {
		t.Fatal("empty store must restore to no session")
	}

	// Records written after the initial restore are not picked up.
	_ = kv.Put(ctx, profileKey, `{"id":"u1","email":"a@b.com","role":"user"}`)
	_ = kv.Put(ctx, tokenKey, "tok")
	if _, ok := s.Restore(ctx); ok {
		t.Fatal("second restore must not re-read the store")
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	kv := store.NewMemory()
	s := newTestStore(t, kv)
	ctx := context.Background()

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("logout without session: %v", err)
	}

	if _, err := s.Login(ctx, "a@b.com", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := s.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, ok := s.Current(); ok {
		t.Fatal("session should be gone after logout")
	}
	if _, err := kv.Get(ctx, tokenKey); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("token record should be cleared, got %v", err)
	}
	if err := s.Logout(ctx); err != nil {
		t.Fatalf("repeated logout: %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv(secretEnvVariable, "test-secret")
	ResetSecretForTests()

	token, err := GenerateToken("sess-42", "Admin", 30*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := ParseAndValidate(token)
	if err != nil {
		t.Fatalf("ParseAndValidate: %v", err)
	}
	if claims.Subject != "sess-42" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Role != RoleAdmin {
		t.Fatalf("role not normalized: %s", claims.Role)
	}

	if _, err := ParseAndValidate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = ContextWithUser(ctx, "sess-7", "ADMIN")
	id, ok := UserIDFromContext(ctx)
	if !ok || id != "sess-7" {
		t.Fatalf("unexpected user id: %s, ok=%v", id, ok)
	}
	if !HasRole(ctx, "admin") {
		t.Fatal("expected admin role")
	}
	if HasRole(ctx, "operator") {
		t.Fatal("unexpected role found")
	}
}
