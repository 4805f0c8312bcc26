package twitch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

const tokenURL = "https://id.twitch.tv/oauth2/token"

// Authenticate exchanges the application credentials for an app access
// token. The token and the client ID are kept for later Helix calls.
func (p *Twitch) Authenticate(ctx context.Context, clientID, clientSecret string) error {
	v := url.Values{}
	v.Set("client_id", clientID)
	v.Set("client_secret", clientSecret)
	v.Set("grant_type", "client_credentials")

	var resp tokenResponse
	err := p.getter.PostJSON(ctx, tokenURL+"?"+v.Encode(), nil, nil, &resp)
	if err != nil {
		return fmt.Errorf("can't get application token: %w", err)
	}
	if resp.AccessToken == "" {
		return errors.New("can't get application token: empty response")
	}
	p.clientID = clientID
	p.token = resp.AccessToken
	p.log.Debug().Printf("[TWITCH] Application token acquired, expires in %ds", resp.ExpiresIn)
	return nil
}
