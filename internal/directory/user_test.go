package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"admincore.org/internal/collection"
)

func TestUserDraftValidation(t *testing.T) {
	valid := func() *UserDraft {
		return &UserDraft{
			Name:            "Juan Pérez",
			Email:           "juan@example.com",
			Role:            "user",
			Password:        "secret1",
			ConfirmPassword: "secret1",
		}
	}

	cases := map[string]func(*UserDraft){
		"blank name":        func(d *UserDraft) { d.Name = "   " },
		"blank email":       func(d *UserDraft) { d.Email = "" },
		"email no domain":   func(d *UserDraft) { d.Email = "juan@example" },
		"email no local":    func(d *UserDraft) { d.Email = "@example.com" },
		"short password":    func(d *UserDraft) { d.Password, d.ConfirmPassword = "abc", "abc" },
		"mismatch password": func(d *UserDraft) { d.ConfirmPassword = "other1" },
		"bad role":          func(d *UserDraft) { d.Role = "superuser" },
	}
	for name, mutate := range cases {
		d := valid()
		mutate(d)
		err := d.Validate()
		if err == nil {
			t.Fatalf("%s: expected rejection", name)
		}
		var verr *collection.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %v", name, err)
		}
	}

	d := valid()
	d.Email = "Juan@Example.COM"
	d.Role = ""
	if err := d.Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}
	if d.Email != "juan@example.com" {
		t.Fatalf("email not normalized: %s", d.Email)
	}
	if d.Role != RoleUser {
		t.Fatalf("role must default to user, got %s", d.Role)
	}
}

func TestUserDraftMaterialize(t *testing.T) {
	d := &UserDraft{
		Name:            "Ana",
		Email:           "ana@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	now := time.Now().UTC()
	u := d.Materialize("u-9", now)
	if u.ID != "u-9" || u.State != collection.StatusActive || u.LoginCount != 0 {
		t.Fatalf("unexpected entity: %+v", u)
	}
	if err := u.VerifyPassword("secret1"); err != nil {
		t.Fatalf("password must verify against stored hash: %v", err)
	}
	if err := u.VerifyPassword("wrong"); err == nil {
		t.Fatal("wrong password must not verify")
	}
}

func TestClientDraftValidation(t *testing.T) {
	d := &ClientDraft{Name: "Juan García", Email: "juan.garcia@email.com", Type: "user_voucher"}
	if err := d.Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}
	if d.Type != ClientTypeVoucher {
		t.Fatalf("unexpected type: %s", d.Type)
	}

	d = &ClientDraft{Name: "X", Email: "x@y.z", Type: "wholesale"}
	if err := d.Validate(); err == nil {
		t.Fatal("unknown client type must be rejected")
	}

	d = &ClientDraft{Name: "X", Email: "x@y.z"}
	if err := d.Validate(); err != nil {
		t.Fatalf("empty type must default, got %v", err)
	}
	if d.Type != ClientTypeApp {
		t.Fatalf("type must default to %s, got %s", ClientTypeApp, d.Type)
	}
}

func TestFixtureSourcesReturnFreshCopies(t *testing.T) {
	ctx := context.Background()
	first, err := SeedUsers(ctx)
	if err != nil {
		t.Fatalf("SeedUsers: %v", err)
	}
	if len(first) != 8 {
		t.Fatalf("expected 8 sample users, got %d", len(first))
	}
	first[0].State = collection.StatusBlocked

	second, _ := SeedUsers(ctx)
	if second[0].State != collection.StatusActive {
		t.Fatal("seed mutation leaked between calls")
	}

	clients, err := SeedClients(ctx)
	if err != nil {
		t.Fatalf("SeedClients: %v", err)
	}
	if len(clients) != 6 {
		t.Fatalf("expected 6 sample clients, got %d", len(clients))
	}
}

func TestFieldKeys(t *testing.T) {
	u := &User{Role: RoleAdmin, State: collection.StatusActive}
	if u.Field("role") != RoleAdmin || u.Field("status") != "active" {
		t.Fatalf("unexpected field values: %s / %s", u.Field("role"), u.Field("status"))
	}
	if u.Field("type") != "" {
		t.Fatal("unknown key must read empty")
	}

	c := &Client{Type: ClientTypeApp, State: collection.StatusInactive}
	if c.Field("type") != ClientTypeApp || c.Field("status") != "inactive" {
		t.Fatalf("unexpected field values: %s / %s", c.Field("type"), c.Field("status"))
	}
}
