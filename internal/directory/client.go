package directory

import (
	"fmt"
	"strings"
	"time"

	"admincore.org/internal/collection"
)

// Client type tags.
const (
	ClientTypeApp     = "user_app"
	ClientTypeVoucher = "user_voucher"
)

// Client is an end customer record. Monetary totals are kept in minor units.
type Client struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Type            string            `json:"type"`
	State           collection.Status `json:"status"`
	JoinedAt        time.Time         `json:"joined_at"`
	LastActive      time.Time         `json:"last_active"`
	TotalPurchases  int               `json:"total_purchases"`
	TotalSpentCents int64             `json:"total_spent_cents"`
}

func (c *Client) EntityID() string { return c.ID }

func (c *Client) Status() collection.Status { return c.State }

func (c *Client) SetStatus(s collection.Status) { c.State = s }

func (c *Client) Field(key string) string {
	switch key {
	case "status":
		return string(c.State)
	case "type":
		return c.Type
	default:
		return ""
	}
}

// ClientDraft is the create-intent payload for a client record. Clients
// carry no secret, so there is no password rule.
type ClientDraft struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type"`
}

func (d *ClientDraft) Validate() error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return &collection.ValidationError{Reason: "name is required"}
	}
	d.Email = strings.TrimSpace(strings.ToLower(d.Email))
	if d.Email == "" {
		return &collection.ValidationError{Reason: "email is required"}
	}
	if !emailPattern.MatchString(d.Email) {
		return &collection.ValidationError{Reason: "email is not valid"}
	}
	clientType := strings.TrimSpace(strings.ToLower(d.Type))
	if clientType == "" {
		clientType = ClientTypeApp
	}
	if clientType != ClientTypeApp && clientType != ClientTypeVoucher {
		return &collection.ValidationError{Reason: fmt.Sprintf("unsupported client type %q", d.Type)}
	}
	d.Type = clientType
	return nil
}

func (d *ClientDraft) Materialize(id string, now time.Time) *Client {
	return &Client{
		ID:              id,
		Name:            d.Name,
		Email:           d.Email,
		Type:            d.Type,
		State:           collection.StatusActive,
		JoinedAt:        now,
		LastActive:      now,
		TotalPurchases:  0,
		TotalSpentCents: 0,
	}
}
