package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/Mofferator/Twitch-Clip-Downloader-CLI/twitch"
)

// writeMetadata writes the Helix record of the clip in a JSON file next
// to the media file
func writeMetadata(mediaPath string, clip *twitch.Clip) error {
	fn := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + ".json"
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	e := json.NewEncoder(f)
	e.SetIndent("", "  ")
	return e.Encode(clip)
}
