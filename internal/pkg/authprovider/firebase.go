package authprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// FirebaseProvider verifies credentials against Firebase Authentication.
// Password checks go through the Identity Toolkit REST API because the admin
// SDK exposes no password verification on purpose; account lookups use the
// admin client.
type FirebaseProvider struct {
	client *auth.Client
	apiKey string
	http   *http.Client
}

func NewFirebaseProvider(ctx context.Context, app *firebase.App, apiKey string) (*FirebaseProvider, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return &FirebaseProvider{client: client, apiKey: apiKey, http: http.DefaultClient}, nil
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

func (p *FirebaseProvider) VerifyEmailPassword(ctx context.Context, email, password string) (User, error) {
	payload, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return User{}, err
	}

	url := fmt.Sprintf("%s?key=%s", signInEndpoint, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return User{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("identity toolkit sign-in: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		// Wrong password, unknown email and disabled account all come back
		// as 400 with a reason code. Disabled must surface separately so
		// the caller can stop the fallback chain.
		var body struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error.Message == "USER_DISABLED" {
			return User{}, ErrUserDisabled
		}
		return User{}, ErrUserNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return User{}, fmt.Errorf("identity toolkit sign-in: unexpected status %d", resp.StatusCode)
	}

	var body signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return User{}, err
	}
	return User{UID: body.LocalID, Email: body.Email, DisplayName: body.DisplayName}, nil
}

func (p *FirebaseProvider) GetUserByEmail(ctx context.Context, email string) (User, error) {
	record, err := p.client.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("get provider user: %w", err)
	}
	return User{
		UID:         record.UID,
		Email:       record.Email,
		DisplayName: record.DisplayName,
		Disabled:    record.Disabled,
	}, nil
}
