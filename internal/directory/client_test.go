package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepscribes/transcription-platform/internal/transcription/models"
)

func TestNew_RequiresConfiguration(t *testing.T) {
	_, err := New("", "sk_test", zerolog.Nop())
	require.ErrorIs(t, err, models.ErrMisconfigured)

	_, err = New("https://api.example/v1", "", zerolog.Nop())
	require.ErrorIs(t, err, models.ErrMisconfigured)
}

func TestGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/u1", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "u1",
			"first_name": "Ada",
			"primary_email_address_id": "em_2",
			"email_addresses": [
				{"id": "em_1", "email_address": "old@example.com"},
				{"id": "em_2", "email_address": "ada@example.com"}
			]
		}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL, "sk_test", zerolog.Nop())
	require.NoError(t, err)

	user, err := client.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "ada@example.com", user.PrimaryEmail())
}

func TestGetUser_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := New(srv.URL, "sk_test", zerolog.Nop())
	require.NoError(t, err)

	_, err = client.GetUser(context.Background(), "missing")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetUser_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := New(srv.URL, "sk_test", zerolog.Nop())
	require.NoError(t, err)

	_, err = client.GetUser(context.Background(), "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrNotFound)
}

func TestGetUser_EmptyID(t *testing.T) {
	client, err := New("https://api.example/v1", "sk_test", zerolog.Nop())
	require.NoError(t, err)

	_, err = client.GetUser(context.Background(), "")
	require.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestPrimaryEmail_FallsBackToFirstAddress(t *testing.T) {
	user := &User{
		PrimaryEmailAddressID: "em_gone",
		EmailAddresses: []EmailAddress{
			{ID: "em_1", EmailAddress: "first@example.com"},
		},
	}
	assert.Equal(t, "first@example.com", user.PrimaryEmail())

	empty := &User{}
	assert.Empty(t, empty.PrimaryEmail())
}
