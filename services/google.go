package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var ErrInvalidCredential = errors.New("invalid google credential")

type GoogleProfile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleVerifier validates an externally-issued Google access token. Two
// sequential provider calls back it: token introspection, then the profile
// fetch. Callers only see a single Verify capability.
type GoogleVerifier struct {
	client       *http.Client
	tokenInfoURL string
	userInfoURL  string
}

func NewGoogleVerifier() *GoogleVerifier {
	return &GoogleVerifier{
		client:       &http.Client{Timeout: 10 * time.Second},
		tokenInfoURL: "https://www.googleapis.com/oauth2/v1/tokeninfo",
		userInfoURL:  "https://www.googleapis.com/oauth2/v2/userinfo",
	}
}

func (v *GoogleVerifier) Verify(ctx context.Context, accessToken string) (*GoogleProfile, error) {
	// Introspect first: a token that fails introspection gets no trust at all.
	if err := v.introspect(ctx, accessToken); err != nil {
		return nil, err
	}

	profile, err := v.fetchProfile(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("%w: profile missing email", ErrInvalidCredential)
	}
	return profile, nil
}

func (v *GoogleVerifier) introspect(ctx context.Context, accessToken string) error {
	resp, err := v.get(ctx, v.tokenInfoURL, accessToken)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: tokeninfo returned %d", ErrInvalidCredential, resp.StatusCode)
	}
	return nil
}

func (v *GoogleVerifier) fetchProfile(ctx context.Context, accessToken string) (*GoogleProfile, error) {
	resp, err := v.get(ctx, v.userInfoURL, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: userinfo returned %d", ErrInvalidCredential, resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	return &profile, nil
}

func (v *GoogleVerifier) get(ctx context.Context, endpoint, accessToken string) (*http.Response, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("access_token", accessToken)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	return v.client.Do(req)
}
