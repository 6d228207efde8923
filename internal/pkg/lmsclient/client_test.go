package lmsclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetForwardsContextToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(Options{})
	ctx := ContextWithToken(context.Background(), "abc")

	data, err := c.Get(ctx, srv.URL+"/x")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(data))
	assert.Equal(t, "JWT abc", gotAuth)
}

func TestClient_FallbackTokenSource(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(Options{Fallback: NewStaticTokenSource("svc", "Bearer")})

	_, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Bearer svc", gotAuth)
}

func TestClient_NonSuccessStatusIsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail":"nope"}`))
	}))
	defer srv.Close()

	c := New(Options{})
	_, err := c.Patch(context.Background(), srv.URL, map[string]interface{}{"value": true})
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
	assert.Equal(t, http.MethodPatch, httpErr.Method)
	assert.JSONEq(t, `{"detail":"nope"}`, string(httpErr.Body))
}

func TestClient_PostFormEncodesBody(t *testing.T) {
	var gotBody, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(Options{})
	data, err := c.PostForm(context.Background(), srv.URL, url.Values{"password": {"s3cret"}})
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Equal(t, "password=s3cret", gotBody)
	assert.Equal(t, "application/x-www-form-urlencoded", gotType)
}
