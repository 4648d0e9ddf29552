package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinylink/tinylink-cli/internal/client/models"
)

const camelLink = `{"id":"1","originalUrl":"https://example.com","shortCode":"abc","shortUrl":"http://t.ly/abc","clicks":3,"createdAt":"2025-01-02T10:00:00Z"}`
const snakeLink = `{"id":"1","original_url":"https://example.com","short_code":"abc","short_url":"http://t.ly/abc","clicks":3,"created_at":"2025-01-02T10:00:00Z"}`

func wantLink() models.ShortLink {
	return models.ShortLink{
		ID:          "1",
		OriginalURL: "https://example.com",
		ShortCode:   "abc",
		ShortURL:    "http://t.ly/abc",
		Clicks:      3,
		CreatedAt:   "2025-01-02T10:00:00Z",
	}
}

func TestLinks_CamelAndSnakeProjectIdentically(t *testing.T) {
	camel, droppedCamel := Links(json.RawMessage("[" + camelLink + "]"))
	snake, droppedSnake := Links(json.RawMessage("[" + snakeLink + "]"))

	assert.Equal(t, 0, droppedCamel)
	assert.Equal(t, 0, droppedSnake)
	assert.Equal(t, camel, snake)
	require.Len(t, camel, 1)
	assert.Equal(t, wantLink(), camel[0])
}

func TestLinks_BareArrayAndEnvelopeAreEquivalent(t *testing.T) {
	bare, droppedBare := Links(json.RawMessage("[" + camelLink + "]"))
	enveloped, droppedEnv := Links(json.RawMessage(`{"urls":[` + camelLink + `]}`))

	assert.Equal(t, bare, enveloped)
	assert.Equal(t, droppedBare, droppedEnv)
}

func TestLinks_RecordMissingCreatedAtIsDroppedAndCounted(t *testing.T) {
	raw := json.RawMessage(`[
		{"id":"1","originalUrl":"https://a.com","shortUrl":"http://t.ly/a","createdAt":"2025-01-01"},
		{"id":"2","originalUrl":"https://b.com","shortUrl":"http://t.ly/b"}
	]`)

	items, dropped := Links(raw)
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, 1, dropped)
}

func TestLinks_IDFallsBackToShortCode(t *testing.T) {
	raw := json.RawMessage(`[{"short_code":"xyz","original_url":"https://a.com","short_url":"http://t.ly/xyz","created_at":"2025-01-01"}]`)

	items, dropped := Links(raw)
	require.Len(t, items, 1)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, "xyz", items[0].ID)
}

func TestLinks_ClicksDefaultToZero(t *testing.T) {
	raw := json.RawMessage(`[{"id":"1","originalUrl":"https://a.com","shortUrl":"http://t.ly/a","createdAt":"2025-01-01"}]`)

	items, _ := Links(raw)
	require.Len(t, items, 1)
	assert.Equal(t, int64(0), items[0].Clicks)
}

func TestLinks_NumericIDIsStringified(t *testing.T) {
	raw := json.RawMessage(`[{"id":42,"originalUrl":"https://a.com","shortUrl":"http://t.ly/a","createdAt":"2025-01-01"}]`)

	items, _ := Links(raw)
	require.Len(t, items, 1)
	assert.Equal(t, "42", items[0].ID)
}

func TestLinks_PreservesInputOrder(t *testing.T) {
	raw := json.RawMessage(`[
		{"id":"b","originalUrl":"https://b.com","shortUrl":"http://t.ly/b","createdAt":"x"},
		{"id":"a","originalUrl":"https://a.com","shortUrl":"http://t.ly/a","createdAt":"x"},
		{"id":"c","originalUrl":"https://c.com","shortUrl":"http://t.ly/c","createdAt":"x"}
	]`)

	items, _ := Links(raw)
	require.Len(t, items, 3)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
	assert.Equal(t, "c", items[2].ID)
}

func TestLinks_UnrecognizedShapeYieldsEmpty(t *testing.T) {
	for _, raw := range []string{`"just a string"`, `123`, `{"something":"else"}`, `null`} {
		items, dropped := Links(json.RawMessage(raw))
		assert.Empty(t, items, "input: %s", raw)
		assert.Equal(t, 0, dropped, "input: %s", raw)
	}
}

func TestLink_SingleRecord(t *testing.T) {
	link, ok := Link(json.RawMessage(snakeLink))
	require.True(t, ok)
	assert.Equal(t, wantLink(), link)

	_, ok = Link(json.RawMessage(`{"id":"1"}`))
	assert.False(t, ok)
}

func TestPendingUsers_Normalization(t *testing.T) {
	raw := json.RawMessage(`{"users":[
		{"id":"u1","email":"a@b.com","username":"a","created_at":"2025-01-01","status":"pending"},
		{"id":"u2","email":"c@d.com","username":"c","status":"weird"},
		{"id":"u3","email":"e@f.com"}
	]}`)

	items, dropped := PendingUsers(raw)
	require.Len(t, items, 2)
	assert.Equal(t, 1, dropped, "user without username is unactionable")

	assert.Equal(t, models.StatusPending, items[0].Status)
	assert.Equal(t, "2025-01-01", items[0].CreatedAt)
	assert.Equal(t, models.StatusPending, items[1].Status, "unknown status defaults to pending")
}

func TestPendingUsers_BareArray(t *testing.T) {
	raw := json.RawMessage(`[{"id":"u1","email":"a@b.com","username":"a","status":"approved"}]`)

	items, dropped := PendingUsers(raw)
	require.Len(t, items, 1)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, models.StatusApproved, items[0].Status)
}
