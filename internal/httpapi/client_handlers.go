package httpapi

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"admincore.org/internal/audit"
	"admincore.org/internal/collection"
	"admincore.org/internal/directory"
)

func (a *API) handleClients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if err := applyViewParams(a.clients, r.URL.Query(), "status", "type"); err != nil {
			handleCollectionError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toListResponse(a.clients.View()))
	case http.MethodPost:
		var draft directory.ClientDraft
		if err := decodeJSON(w, r, &draft); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		client, err := a.clients.Create(&draft)
		if err != nil {
			handleCollectionError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "client.create", map[string]any{
			"client_id": client.ID,
			"email":     client.Email,
		})
		w.Header().Set("Location", fmt.Sprintf("/v1/clients/%s", client.ID))
		writeJSON(w, http.StatusCreated, client)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleClientResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/clients/")
	path = strings.Trim(path, "/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	client, err := a.clients.Get(path)
	if err != nil {
		handleCollectionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// --- dashboard ---

func (a *API) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	users := a.users.All()
	clients := a.clients.All()

	var activeUsers, blockedUsers, totalLogins int
	for _, u := range users {
		switch u.State {
		case collection.StatusActive:
			activeUsers++
		case collection.StatusBlocked:
			blockedUsers++
		}
		totalLogins += u.LoginCount
	}

	var activeClients, totalPurchases int
	var totalSpentCents int64
	for _, c := range clients {
		if c.State == collection.StatusActive {
			activeClients++
		}
		totalPurchases += c.TotalPurchases
		totalSpentCents += c.TotalSpentCents
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"users": map[string]any{
			"total":        len(users),
			"active":       activeUsers,
			"blocked":      blockedUsers,
			"total_logins": totalLogins,
		},
		"clients": map[string]any{
			"total":             len(clients),
			"active":            activeClients,
			"total_purchases":   totalPurchases,
			"total_spent_cents": totalSpentCents,
		},
	})
}

// handleDashboardActivity lists the most recently active entities across both
// collections.
func (a *API) handleDashboardActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	type activityItem struct {
		Kind   string `json:"kind"`
		ID     string `json:"id"`
		Name   string `json:"name"`
		Status string `json:"status"`
		At     string `json:"at"`
	}
	var items []activityItem
	for _, u := range a.users.All() {
		items = append(items, activityItem{
			Kind: "user", ID: u.ID, Name: u.Name,
			Status: string(u.State), At: u.LastLogin.UTC().Format(time.RFC3339),
		})
	}
	for _, c := range a.clients.All() {
		items = append(items, activityItem{
			Kind: "client", ID: c.ID, Name: c.Name,
			Status: string(c.State), At: c.LastActive.UTC().Format(time.RFC3339),
		})
	}
	// RFC 3339 sorts lexicographically; newest first.
	sort.Slice(items, func(i, j int) bool { return items[i].At > items[j].At })
	if len(items) > 10 {
		items = items[:10]
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
