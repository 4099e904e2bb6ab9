package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"admincore.org/internal/collection"
	"admincore.org/internal/directory"
)

type listResponse[T any] struct {
	Items         []T `json:"items"`
	Page          int `json:"page"`
	PageSize      int `json:"page_size"`
	TotalPages    int `json:"total_pages"`
	FilteredCount int `json:"filtered_count"`
	TotalCount    int `json:"total_count"`
}

func toListResponse[T collection.Entity](v collection.View[T]) listResponse[T] {
	return listResponse[T]{
		Items:         v.Items,
		Page:          v.Page,
		PageSize:      v.PageSize,
		TotalPages:    v.TotalPages,
		FilteredCount: v.FilteredCount,
		TotalCount:    v.TotalCount,
	}
}

// applyViewParams translates query parameters into filter/page intents.
func applyViewParams[T collection.Entity](c *collection.Controller[T], q url.Values, filterKeys ...string) error {
	for _, key := range filterKeys {
		if q.Has(key) {
			c.SetFilter(key, q.Get(key))
		}
	}
	if q.Has("page") {
		n, err := strconv.Atoi(q.Get("page"))
		if err != nil {
			return &collection.ValidationError{Reason: "page must be a number"}
		}
		c.SetPage(n)
	}
	return nil
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

type blockRequest struct {
	Reason string `json:"reason"`
}

func (a *API) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if err := applyViewParams(a.users, r.URL.Query(), "status", "role"); err != nil {
			handleCollectionError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toListResponse(a.users.View()))
	case http.MethodPost:
		var draft directory.UserDraft
		if err := decodeJSON(w, r, &draft); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		user, err := a.users.Create(&draft)
		if err != nil {
			handleCollectionError(w, r, err)
			return
		}
		a.trail.Record(r.Context(), user.ID, "user.create", user.Email)
		w.Header().Set("Location", fmt.Sprintf("/v1/users/%s", user.ID))
		writeJSON(w, http.StatusCreated, user)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleUserResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/users/")
	path = strings.Trim(path, "/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	parts := strings.Split(path, "/")
	switch len(parts) {
	case 1:
		a.handleUser(w, r, parts[0])
	case 2:
		userID := parts[0]
		switch parts[1] {
		case "block":
			a.handleUserBlock(w, r, userID)
		case "unblock":
			a.handleUserUnblock(w, r, userID)
		case "audit":
			a.handleUserAudit(w, r, userID)
		default:
			writeError(w, r, http.StatusNotFound, "resource not found")
		}
	default:
		writeError(w, r, http.StatusNotFound, "resource not found")
	}
}

func (a *API) handleUser(w http.ResponseWriter, r *http.Request, userID string) {
	switch r.Method {
	case http.MethodGet:
		user, err := a.users.Get(userID)
		if err != nil {
			handleCollectionError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	case http.MethodPut:
		var req updateUserRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		user, err := a.users.Update(userID, func(u *directory.User) error {
			return applyUserUpdate(u, req)
		})
		if err != nil {
			handleCollectionError(w, r, err)
			return
		}
		a.trail.Record(r.Context(), userID, "user.update", "")
		writeJSON(w, http.StatusOK, user)
	case http.MethodDelete:
		if err := a.users.Delete(userID); err != nil {
			handleCollectionError(w, r, err)
			return
		}
		a.trail.Record(r.Context(), userID, "user.delete", "")
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func applyUserUpdate(u *directory.User, req updateUserRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return &collection.ValidationError{Reason: "name is required"}
		}
		u.Name = name
	}
	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		if !directory.ValidEmail(email) {
			return &collection.ValidationError{Reason: "email is not valid"}
		}
		u.Email = email
	}
	if req.Role != nil {
		role := strings.TrimSpace(strings.ToLower(*req.Role))
		if role != directory.RoleUser && role != directory.RoleAdmin {
			return &collection.ValidationError{Reason: fmt.Sprintf("unsupported role %q", *req.Role)}
		}
		u.Role = role
	}
	return nil
}

func (a *API) handleUserBlock(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req blockRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	user, err := a.users.TransitionStatus(userID, collection.StatusBlocked, req.Reason)
	if err != nil {
		handleCollectionError(w, r, err)
		return
	}
	a.trail.Record(r.Context(), userID, "user.block", req.Reason)
	writeJSON(w, http.StatusOK, user)
}

func (a *API) handleUserUnblock(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	user, err := a.users.TransitionStatus(userID, collection.StatusActive, "")
	if err != nil {
		handleCollectionError(w, r, err)
		return
	}
	a.trail.Record(r.Context(), userID, "user.unblock", "")
	writeJSON(w, http.StatusOK, user)
}

func (a *API) handleUserAudit(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if _, err := a.users.Get(userID); err != nil {
		handleCollectionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": a.trail.ForEntity(userID),
	})
}
