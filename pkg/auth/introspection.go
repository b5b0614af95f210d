package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/zenithweb/zenith/internal/config"
	"golang.org/x/oauth2/clientcredentials"
)

// IntrospectionAuthenticator validates bearer tokens against the identity
// provider's OAuth 2.0 token introspection endpoint. The service presents its
// own client credentials when calling the provider.
type IntrospectionAuthenticator struct {
	introspectionURL string
	client           *http.Client
}

func NewIntrospectionAuthenticator(cfg config.Auth) *IntrospectionAuthenticator {
	ccConfig := &clientcredentials.Config{
		ClientID:     cfg.ClientId,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}
	return &IntrospectionAuthenticator{
		introspectionURL: cfg.IntrospectionURL,
		client:           ccConfig.Client(context.Background()),
	}
}

type introspectionResult struct {
	Active  bool     `json:"active"`
	Subject string   `json:"sub"`
	Roles   []string `json:"roles"`
}

func (a *IntrospectionAuthenticator) Authenticate(ctx context.Context, token string) (Identity, error) {
	form := url.Values{"token": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.introspectionURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Identity{}, fmt.Errorf("could not create introspection request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(req)
	if err != nil {
		err := fmt.Errorf("token introspection request failed: %w", err)
		log.Error(err)
		return Identity{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("token introspection returned status %d", resp.StatusCode)
		log.Error(err)
		return Identity{}, err
	}

	var result introspectionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		err := fmt.Errorf("could not decode introspection response: %w", err)
		log.Error(err)
		return Identity{}, err
	}

	if !result.Active {
		log.Debug("introspection reported an inactive token")
		return Identity{}, ErrInvalidToken
	}

	return Identity{Subject: result.Subject, Roles: result.Roles}, nil
}
