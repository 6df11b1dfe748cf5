package loops

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
	return NewClient(&config.LoopsConfig{
		Enabled: true,
		APIKey:  "test-key",
		BaseURL: serverURL,
	})
}

func TestUpsertContactCreatesWhenUnknown(t *testing.T) {
	var createdBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/contacts/find":
			require.Equal(t, "jane@example.com", r.URL.Query().Get("email"))
			require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"message":"Contact not found"}`))
		case "/contacts/create":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&createdBody))
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"success":true,"id":"abc"}`))
		case "/contacts/update":
			t.Error("Should not update an unknown contact")
		default:
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := testClient(server.URL)
	err := client.UpsertContact(context.Background(), &models.ContactPayload{
		Email:       "jane@example.com",
		Name:        "Jane Doe",
		UserGroup:   GroupNominator,
		Subcategory: "Rising Star",
	})

	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", createdBody["email"])
	assert.Equal(t, "Jane", createdBody["firstName"])
	assert.Equal(t, "Doe", createdBody["lastName"])
	assert.Equal(t, GroupNominator, createdBody["userGroup"])
	assert.Equal(t, "Rising Star", createdBody["subcategory"])
}

func TestUpsertContactUpdatesWhenFound(t *testing.T) {
	var updatedBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/contacts/find":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`[{"id":"abc","email":"jane@example.com","userGroup":"Nominator"}]`))
		case "/contacts/update":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&updatedBody))
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"success":true,"id":"abc"}`))
		case "/contacts/create":
			t.Error("Should not create an existing contact")
		}
	}))
	defer server.Close()

	client := testClient(server.URL)
	err := client.UpsertContact(context.Background(), &models.ContactPayload{
		Email:     "jane@example.com",
		Name:      "Jane Doe",
		UserGroup: GroupNominee,
		LiveURL:   "https://awards.example.com/nominees/jane-doe",
	})

	require.NoError(t, err)
	assert.Equal(t, GroupNominee, updatedBody["userGroup"])
	assert.Equal(t, "https://awards.example.com/nominees/jane-doe", updatedBody["liveUrl"])
}

func TestFindContactNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	record, err := client.FindContact(context.Background(), "nobody@example.com")

	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestFindContactEmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	record, err := client.FindContact(context.Background(), "nobody@example.com")

	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestUpsertContactCreateFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/contacts/find":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false}`))
		case "/contacts/create":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"message":"Invalid email"}`))
		}
	}))
	defer server.Close()

	client := testClient(server.URL)
	err := client.UpsertContact(context.Background(), &models.ContactPayload{
		Email: "bad",
		Name:  "Jane Doe",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}
