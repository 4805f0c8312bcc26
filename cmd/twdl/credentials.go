package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Credentials hold the Twitch application keys used for Helix calls
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// ReadCredentials reads the JSON credentials file
func ReadCredentials(fn string) (Credentials, error) {
	f, err := os.Open(fn)
	if err != nil {
		return Credentials{}, fmt.Errorf("can't open credentials file: %w", err)
	}
	defer f.Close()

	c := Credentials{}
	if err := json.NewDecoder(f).Decode(&c); err != nil {
		return Credentials{}, fmt.Errorf("can't decode credentials file: %w", err)
	}
	if c.ClientID == "" || c.ClientSecret == "" {
		return Credentials{}, errors.New("credentials file must provide client_id and client_secret")
	}
	return c, nil
}
