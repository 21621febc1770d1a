package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestVerifier(handler http.Handler) (*GoogleVerifier, *httptest.Server) {
	srv := httptest.NewServer(handler)
	v := NewGoogleVerifier()
	v.tokenInfoURL = srv.URL + "/tokeninfo"
	v.userInfoURL = srv.URL + "/userinfo"
	return v, srv
}

func TestVerifyHappyPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tokeninfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok_1", r.URL.Query().Get("access_token"))
		fmt.Fprint(w, `{"audience":"popflix","expires_in":3500}`)
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"email":"viewer@example.com","name":"Viewer","picture":"https://img/p.jpg"}`)
	})
	v, srv := newTestVerifier(mux)
	defer srv.Close()

	profile, err := v.Verify(context.Background(), "tok_1")
	assert.NoError(t, err)
	assert.Equal(t, "viewer@example.com", profile.Email)
	assert.Equal(t, "Viewer", profile.Name)
	assert.Equal(t, "https://img/p.jpg", profile.Picture)
}

func TestVerifyRejectedIntrospectionSkipsProfileFetch(t *testing.T) {
	profileCalled := false
	mux := http.NewServeMux()
	mux.HandleFunc("/tokeninfo", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_token"}`, http.StatusUnauthorized)
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		profileCalled = true
	})
	v, srv := newTestVerifier(mux)
	defer srv.Close()

	_, err := v.Verify(context.Background(), "tok_bad")
	assert.ErrorIs(t, err, ErrInvalidCredential)
	assert.False(t, profileCalled)
}

func TestVerifyProfileFetchFailureIsHardFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tokeninfo", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})
	v, srv := newTestVerifier(mux)
	defer srv.Close()

	_, err := v.Verify(context.Background(), "tok_1")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestVerifyProfileWithoutEmailRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tokeninfo", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"No Email"}`)
	})
	v, srv := newTestVerifier(mux)
	defer srv.Close()

	_, err := v.Verify(context.Background(), "tok_1")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}
