package twitch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Mofferator/Twitch-Clip-Downloader-CLI/daterange"
)

const (
	helixClipsURL = "https://api.twitch.tv/helix/clips"
	helixUsersURL = "https://api.twitch.tv/helix/users"
)

// Page size bounds enforced by the Helix listing endpoint
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ErrListingFetch reports a clip listing aborted mid pagination
var ErrListingFetch = errors.New("clip listing fetch failed")

func (p *Twitch) helixHeaders() http.Header {
	h := make(http.Header)
	h.Set("Client-ID", p.clientID)
	h.Set("Authorization", "Bearer "+p.token)
	return h
}

// GetBroadcasterID resolves a broadcaster login into its numeric identifier
func (p *Twitch) GetBroadcasterID(ctx context.Context, login string) (string, error) {
	v := url.Values{}
	v.Set("login", login)

	var resp UsersResponse
	err := p.getter.GetJSON(ctx, helixUsersURL+"?"+v.Encode(), p.helixHeaders(), &resp)
	if err != nil {
		return "", fmt.Errorf("can't resolve login %q: %w", login, err)
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("no user found with login %q", login)
	}
	return resp.Data[0].ID, nil
}

// GetClip returns the Helix record of a single clip
func (p *Twitch) GetClip(ctx context.Context, slug string) (*Clip, error) {
	v := url.Values{}
	v.Set("id", slug)

	var resp ClipsResponse
	err := p.getter.GetJSON(ctx, helixClipsURL+"?"+v.Encode(), p.helixHeaders(), &resp)
	if err != nil {
		return nil, fmt.Errorf("can't get clip %q: %w", slug, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no clip found with id %q", slug)
	}
	return &resp.Data[0], nil
}

// ClipsRequest is the clip listing filter
type ClipsRequest struct {
	BroadcasterID string
	Window        daterange.Range // Optional creation window, zero value lists everything
	PageSize      int             // Records per page, defaulted and capped per Helix rules
}

// GetClips returns every clip of the window, following the pagination
// cursor until the listing omits it. The fetch is all or nothing: the
// first failing page drops the records already accumulated for this
// window.
func (p *Twitch) GetClips(ctx context.Context, req ClipsRequest) ([]Clip, error) {
	first := req.PageSize
	if first <= 0 {
		first = DefaultPageSize
	}
	if first > MaxPageSize {
		first = MaxPageSize
	}

	clips := []Clip{}
	cursor := ""
	for page := 1; ; page++ {
		v := url.Values{}
		v.Set("broadcaster_id", req.BroadcasterID)
		v.Set("first", strconv.Itoa(first))
		if !req.Window.IsZero() {
			v.Set("started_at", req.Window.Start.UTC().Format(time.RFC3339))
			v.Set("ended_at", req.Window.End.UTC().Format(time.RFC3339))
		}
		if cursor != "" {
			v.Set("after", cursor)
		}

		var resp ClipsResponse
		err := p.getter.GetJSON(ctx, helixClipsURL+"?"+v.Encode(), p.helixHeaders(), &resp)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %w", ErrListingFetch, page, err)
		}
		clips = append(clips, resp.Data...)
		p.log.Debug().Printf("[TWITCH] Clips page %d: %d records", page, len(resp.Data))

		if resp.Pagination.Cursor == "" {
			return clips, nil
		}
		cursor = resp.Pagination.Cursor
	}
}
