// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package aap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/canonical/aap-sync-service/internal/logging"
)

const tokenPath = "o/token/"

var _ TokenProviderInterface = (*StaticTokenProvider)(nil)
var _ TokenProviderInterface = (*ClientCredentialsProvider)(nil)

// StaticTokenProvider serves a preconfigured bearer token.
type StaticTokenProvider struct {
	token string
}

func (p *StaticTokenProvider) Token(_ context.Context) (string, error) {
	return p.token, nil
}

func NewStaticTokenProvider(token string) *StaticTokenProvider {
	p := new(StaticTokenProvider)

	p.token = token

	return p
}

// ClientCredentialsProvider obtains tokens from the platform's OAuth token
// endpoint via the unauthenticated form POST path and caches them until
// shortly before expiry.
type ClientCredentialsProvider struct {
	transport    TransportInterface
	clientID     string
	clientSecret string

	mu      sync.Mutex
	token   string
	expires time.Time

	logger logging.LoggerInterface
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (p *ClientCredentialsProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && time.Now().Before(p.expires) {
		return p.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)

	body, err := p.transport.PostForm(ctx, tokenPath, form)
	if err != nil {
		p.logger.Errorf("failed to obtain oauth token: %v", err)
		return "", err
	}

	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}

	if resp.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access token")
	}

	p.token = resp.AccessToken
	// renew a minute early to avoid racing the expiry
	p.expires = time.Now().Add(time.Duration(resp.ExpiresIn)*time.Second - time.Minute)

	return p.token, nil
}

func NewClientCredentialsProvider(
	transport TransportInterface,
	clientID, clientSecret string,
	logger logging.LoggerInterface,
) *ClientCredentialsProvider {
	p := new(ClientCredentialsProvider)

	p.transport = transport
	p.clientID = clientID
	p.clientSecret = clientSecret
	p.logger = logger

	return p
}
