package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/BOCK-CHAIN/BockDocsBackend/errors"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

const googleTimeout = 10 * time.Second

// GoogleUser is the slice of the userinfo payload the sign-in flow needs.
type GoogleUser struct {
	GoogleID string `json:"sub"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// GoogleClient verifies access tokens by asking Google who they belong to.
type GoogleClient struct {
	userInfoURL string
}

func NewGoogleClient() *GoogleClient {
	return &GoogleClient{userInfoURL: googleUserInfoURL}
}

func (c *GoogleClient) Verify(accessToken string) (GoogleUser, error) {
	ctx, cancel := context.WithTimeout(context.Background(), googleTimeout)
	defer cancel()

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	client := oauth2.NewClient(ctx, src)

	res, err := client.Get(c.userInfoURL)
	if err != nil {
		return GoogleUser{}, errors.New("could not reach google", errors.WithCause(err))
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		return GoogleUser{}, errors.New(fmt.Sprintf("google rejected the token: %d", res.StatusCode))
	}

	var user GoogleUser
	if err := json.NewDecoder(res.Body).Decode(&user); err != nil {
		return GoogleUser{}, errors.New("could not decode google response", errors.WithCause(err))
	}

	return user, nil
}
