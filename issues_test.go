package followerwatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIssue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/repos/octocat/tracker/issues", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload struct {
			Title string `json:"title"`
			Body  string `json:"body"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Follower changes for 2026-08-31", payload.Title)
		assert.Contains(t, payload.Body, "Total followers")

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"number": 42, "html_url": "https://github.com/octocat/tracker/issues/42"}`)
	}))
	defer srv.Close()

	notifier, err := NewIssueNotifier("octocat/tracker", "test-token",
		WithIssueBaseURL(srv.URL))
	require.NoError(t, err)

	ref, err := notifier.CreateIssue(
		"Follower changes for 2026-08-31",
		"body here\n\nTotal followers: 5\n")
	require.NoError(t, err)
	assert.Equal(t, 42, ref.Number)
	assert.Equal(t, "https://github.com/octocat/tracker/issues/42", ref.URL)
}

func TestCreateIssueNonSuccessIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "validation failed", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	notifier, err := NewIssueNotifier("octocat/tracker", "test-token",
		WithIssueBaseURL(srv.URL))
	require.NoError(t, err)

	ref, err := notifier.CreateIssue("t", "b")
	assert.Nil(t, ref)

	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, http.StatusUnprocessableEntity, terr.StatusCode)
}

func TestNewIssueNotifierValidation(t *testing.T) {
	_, err := NewIssueNotifier("", "test-token")
	require.Error(t, err)

	_, err = NewIssueNotifier("octocat/tracker", "")
	require.Error(t, err)
}
