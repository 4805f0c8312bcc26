package twitch

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
)

var (
	// ErrNoSourceFound reports a clip without any downloadable rendition
	ErrNoSourceFound = errors.New("no source file found")
	// ErrMalformedMetadata reports a rendition that can't be interpreted
	ErrMalformedMetadata = errors.New("malformed clip metadata")
)

// SourceFile is one downloadable rendition of a clip
type SourceFile struct {
	Quality   int    // Numeric rendition level: 1080, 720...
	FrameRate int    // Rounded frames per second
	URL       string // Source URL carrying the playback token
}

func (s SourceFile) String() string {
	return s.URL
}

// sourceFiles builds the source list of a clip. Each rendition URL gets
// the playback signature appended verbatim and the token value percent
// encoded.
func sourceFiles(clip *clipPayload) ([]SourceFile, error) {
	sig := clip.PlaybackAccessToken.Signature
	token := encodeToken(clip.PlaybackAccessToken.Value)

	ss := make([]SourceFile, 0, len(clip.VideoQualities))
	for _, q := range clip.VideoQualities {
		quality, err := strconv.ParseUint(q.Quality, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: quality label %q is not numeric", ErrMalformedMetadata, q.Quality)
		}
		u := fmt.Sprintf("%s?sig=%s&token=%s", q.SourceURL, sig, token)
		if _, err := url.ParseRequestURI(u); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
		}
		ss = append(ss, SourceFile{
			Quality:   int(quality),
			FrameRate: int(math.Round(q.FrameRate)),
			URL:       u,
		})
	}
	return ss, nil
}

// BestSource returns the rendition with the highest quality value. Equal
// qualities keep the first one seen, frame rate is never compared.
func BestSource(ss []SourceFile) (SourceFile, error) {
	if len(ss) == 0 {
		return SourceFile{}, ErrNoSourceFound
	}
	best := ss[0]
	for _, s := range ss[1:] {
		if s.Quality > best.Quality {
			best = s
		}
	}
	return best, nil
}

// encodeToken percent-encodes the playback token value. Every byte but
// ASCII letters and digits is encoded, as the Twitch web player does.
func encodeToken(s string) string {
	b := bytes.Buffer{}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' {
			b.WriteByte(c)
			continue
		}
		encodeHex(&b, c)
	}
	return b.String()
}

func encodeHex(b *bytes.Buffer, c byte) {
	b.WriteByte('%')
	b.WriteByte("0123456789ABCDEF"[c>>4])
	b.WriteByte("0123456789ABCDEF"[c&15])
}
