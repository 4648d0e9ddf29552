// Package reconcile normalizes the backend's heterogeneous list payloads
// into canonical records. The backend answers sometimes with a bare JSON
// array, sometimes with an envelope object, and mixes camelCase with
// snake_case field names between deployments; every listing goes through
// this package before any other code sees it.
//
// Field projection is an explicit ordered candidate list per canonical
// field: the first candidate present wins. Records missing a required
// field after projection are dropped and counted, never inserted with
// empty defaults, and a single malformed entry never fails the listing.
package reconcile

import (
	"encoding/json"

	"github.com/tinylink/tinylink-cli/internal/client/models"
)

// envelopeKeys are the wrapper field names under which a backend may nest
// a collection instead of returning the list directly.
var envelopeKeys = []string{"urls", "users", "items", "data"}

// entries decodes raw into a list of loosely-typed records, accepting a
// bare array or an enveloped object. Any other shape yields nil.
func entries(raw json.RawMessage) []map[string]json.RawMessage {
	var list []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	for _, key := range envelopeKeys {
		inner, ok := obj[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(inner, &list); err == nil {
			return list
		}
	}
	return nil
}

// pickString projects the first present, non-empty candidate onto a string.
// Bare JSON numbers are accepted too: some backends send numeric ids.
func pickString(entry map[string]json.RawMessage, candidates ...string) string {
	for _, name := range candidates {
		raw, ok := entry[name]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s != "" {
				return s
			}
			continue
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			return n.String()
		}
	}
	return ""
}

// pickInt projects the first present candidate onto an int64, defaulting
// to 0 when absent or not numeric.
func pickInt(entry map[string]json.RawMessage, candidates ...string) int64 {
	for _, name := range candidates {
		raw, ok := entry[name]
		if !ok {
			continue
		}
		var n int64
		if err := json.Unmarshal(raw, &n); err == nil {
			return n
		}
	}
	return 0
}

// Links normalizes a link-collection payload into canonical ShortLink
// records, preserving input order. dropped counts records excluded for
// missing a required field (id, originalUrl, shortUrl, createdAt).
func Links(raw json.RawMessage) (items []models.ShortLink, dropped int) {
	items = make([]models.ShortLink, 0)
	for _, entry := range entries(raw) {
		link := models.ShortLink{
			ID:          pickString(entry, "id", "_id", "shortCode", "short_code"),
			OriginalURL: pickString(entry, "originalUrl", "original_url"),
			ShortCode:   pickString(entry, "shortCode", "short_code"),
			ShortURL:    pickString(entry, "shortUrl", "short_url"),
			Clicks:      pickInt(entry, "clicks"),
			CreatedAt:   pickString(entry, "createdAt", "created_at"),
		}
		if link.ID == "" || link.OriginalURL == "" || link.ShortURL == "" || link.CreatedAt == "" {
			dropped++
			continue
		}
		items = append(items, link)
	}
	return items, dropped
}

// Link normalizes a single link record, as returned by the shorten
// endpoint. ok is false when required fields are missing.
func Link(raw json.RawMessage) (models.ShortLink, bool) {
	items, _ := Links(json.RawMessage("[" + string(raw) + "]"))
	if len(items) != 1 {
		return models.ShortLink{}, false
	}
	return items[0], true
}

// PendingUsers normalizes a pending-user collection into canonical
// records. A record without id, email and username is unactionable and
// is dropped; a missing or unknown status defaults to pending.
func PendingUsers(raw json.RawMessage) (items []models.PendingUser, dropped int) {
	items = make([]models.PendingUser, 0)
	for _, entry := range entries(raw) {
		user := models.PendingUser{
			ID:        pickString(entry, "id", "_id", "userId", "user_id"),
			Email:     pickString(entry, "email"),
			Username:  pickString(entry, "username", "user_name"),
			CreatedAt: pickString(entry, "createdAt", "created_at"),
			Status:    models.UserStatus(pickString(entry, "status")),
		}
		if user.ID == "" || user.Email == "" || user.Username == "" {
			dropped++
			continue
		}
		switch user.Status {
		case models.StatusPending, models.StatusApproved, models.StatusRejected:
		default:
			user.Status = models.StatusPending
		}
		items = append(items, user)
	}
	return items, dropped
}
