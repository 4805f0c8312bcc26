// The twitch package talks to the Twitch web services: the Helix API for
// users and clip listings, and the GQL endpoint serving the playback
// access tokens that unlock clip source files.

package twitch

import (
	"context"
	"net/http"

	"github.com/Mofferator/Twitch-Clip-Downloader-CLI/myhttp"
	"github.com/Mofferator/Twitch-Clip-Downloader-CLI/mylog"
)

type getter interface {
	GetJSON(ctx context.Context, u string, h http.Header, result interface{}) error
	PostJSON(ctx context.Context, u string, h http.Header, payload, result interface{}) error
}

// Twitch gives access to the Twitch web services
type Twitch struct {
	getter   getter
	log      *mylog.MyLog
	clientID string // Application client ID, sent along every Helix call
	token    string // Application bearer token acquired by Authenticate
}

// WithGetter injects a getter instead of the default HTTP client
func WithGetter(g getter) func(p *Twitch) {
	return func(p *Twitch) {
		p.getter = g
	}
}

// WithLogger injects the application logger
func WithLogger(l *mylog.MyLog) func(p *Twitch) {
	return func(p *Twitch) {
		p.log = l
	}
}

// New creates a Twitch client and configures it with a set of config functions
func New(conf ...func(p *Twitch)) *Twitch {
	p := &Twitch{
		getter: myhttp.DefaultClient,
	}
	for _, f := range conf {
		f(p)
	}
	return p
}
