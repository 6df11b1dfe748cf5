package hubspot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"awards-api/internal/config"
	"awards-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(serverURL string) *Client {
	return NewClient(&config.HubSpotConfig{
		Enabled: true,
		Token:   "test-token",
		BaseURL: serverURL,
	})
}

func TestUpsertContactCreate(t *testing.T) {
	var gotAuth string
	var gotProps map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/crm/v3/objects/contacts", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		var body map[string]map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotProps = body["properties"]

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "101"})
	}))
	defer server.Close()

	client := testClient(server.URL)
	err := client.UpsertContact(context.Background(), &models.ContactPayload{
		Email: "jane@example.com",
		Name:  "Jane Doe",
	})

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "jane@example.com", gotProps["email"])
	assert.Equal(t, "Jane", gotProps["firstname"])
	assert.Equal(t, "Doe", gotProps["lastname"])
}

func TestUpsertContactConflictUpdates(t *testing.T) {
	var patchedPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"message": "Contact already exists. Existing ID: 4321",
			})
		case http.MethodPatch:
			patchedPath = r.URL.Path
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "4321"})
		default:
			t.Errorf("Unexpected method %s", r.Method)
		}
	}))
	defer server.Close()

	client := testClient(server.URL)
	err := client.UpsertContact(context.Background(), &models.ContactPayload{
		Email: "jane@example.com",
		Name:  "Jane Doe",
	})

	require.NoError(t, err)
	assert.Equal(t, "/crm/v3/objects/contacts/4321", patchedPath)
}

func TestUpsertContactServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"bad property"}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	err := client.UpsertContact(context.Background(), &models.ContactPayload{
		Email: "jane@example.com",
		Name:  "Jane Doe",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestUpsertCompanyConflictUpdates(t *testing.T) {
	var patched bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			require.Equal(t, "/crm/v3/objects/companies", r.URL.Path)
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"message": "Company already exists. Existing ID: 77",
			})
		case http.MethodPatch:
			require.Equal(t, "/crm/v3/objects/companies/77", r.URL.Path)
			patched = true
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	defer server.Close()

	client := testClient(server.URL)
	err := client.UpsertCompany(context.Background(), "Acme Corp", "acme.example.com")

	require.NoError(t, err)
	assert.True(t, patched)
}

func TestParseConflictID(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"standard message", `{"message":"Contact already exists. Existing ID: 12345"}`, "12345"},
		{"trailing text", `{"message":"Contact already exists. Existing ID: 99 (merged)"}`, "99"},
		{"no id", `{"message":"conflict"}`, ""},
		{"not json", `oops`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseConflictID([]byte(tt.body)))
		})
	}
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Jane Doe")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe", last)

	first, last = splitName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Equal(t, "", last)

	first, last = splitName("Jane van der Berg")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "van der Berg", last)
}
