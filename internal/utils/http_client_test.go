package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient("http://localhost:1", 0)

	require.NotNil(t, client)
	require.NotNil(t, client.Client)
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient("", time.Second)
	client2 := NewHTTPClient("", time.Second)

	assert.NotSame(t, client1.Client, client2.Client)
}

func TestHTTPClient_SendsBaseURLAndToken(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, time.Second).WithToken("tok")
	resp, err := client.R().Get("/api/daemon/noop")

	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode())
	assert.Equal(t, "/api/daemon/noop", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
}

func TestHTTPClient_EmptyTokenSendsNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, time.Second).WithToken("").R().Get("/")

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}
