package twitch

import (
	"context"
	"fmt"
	"net/http"
)

// The GQL endpoint only answers to known players, this is the ID of the
// Twitch web player.
const (
	gqlURL      = "https://gql.twitch.tv/gql"
	gqlClientID = "kimne78kx3ncx6brgo4mv6wki5h1ko"
)

const gqlQuery = `query VideoAccessToken_Clip($slug: ID!) { clip(slug: $slug) { playbackAccessToken(params: {platform: "web", playerBackend: "mediaplayer", playerType: "site"}) { signature value } videoQualities { quality frameRate sourceURL } } }`

type gqlRequest struct {
	OperationName string       `json:"operationName"`
	Variables     gqlVariables `json:"variables"`
	Query         string       `json:"query"`
}

type gqlVariables struct {
	Slug string `json:"slug"`
}

// Nested structs capturing the GQL response

type sourcesResponse struct {
	Data struct {
		Clip *clipPayload `json:"clip"`
	} `json:"data"`
}

type clipPayload struct {
	PlaybackAccessToken playbackAccessToken `json:"playbackAccessToken"`
	VideoQualities      []videoQuality      `json:"videoQualities"`
}

type playbackAccessToken struct {
	Signature string `json:"signature"`
	Value     string `json:"value"`
}

type videoQuality struct {
	Quality   string  `json:"quality"`
	FrameRate float64 `json:"frameRate"`
	SourceURL string  `json:"sourceURL"`
}

// GetSourceFiles fetches the playback token and the renditions of a clip
// and returns one SourceFile per rendition. An unknown slug yields
// ErrNoSourceFound.
func (p *Twitch) GetSourceFiles(ctx context.Context, slug string) ([]SourceFile, error) {
	h := make(http.Header)
	h.Set("Client-ID", gqlClientID)

	payload := gqlRequest{
		OperationName: "VideoAccessToken_Clip",
		Variables:     gqlVariables{Slug: slug},
		Query:         gqlQuery,
	}

	var resp sourcesResponse
	err := p.getter.PostJSON(ctx, gqlURL, h, payload, &resp)
	if err != nil {
		return nil, fmt.Errorf("can't get sources of clip %q: %w", slug, err)
	}
	if resp.Data.Clip == nil {
		return nil, fmt.Errorf("clip %q: %w", slug, ErrNoSourceFound)
	}
	return sourceFiles(resp.Data.Clip)
}
