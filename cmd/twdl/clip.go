package main

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/Mofferator/Twitch-Clip-Downloader-CLI/download"
	"github.com/Mofferator/Twitch-Clip-Downloader-CLI/twitch"
)

// Accepts the two clip page URL forms and the bare slug
var slugMatcher = regexp.MustCompile(`^(?:https?://(?:www\.)?twitch\.tv/[^/]+/clip/|https?://clips\.twitch\.tv/)?([A-Za-z0-9-_]+)(?:\?.*)?$`)

func extractSlug(arg string) (string, error) {
	m := slugMatcher.FindStringSubmatch(arg)
	if m == nil {
		return "", fmt.Errorf("can't find a clip slug in %q", arg)
	}
	return m[1], nil
}

func newClipCommand(a *app) *cobra.Command {
	var output string
	var credentialsFile string
	var link bool
	var metadata bool
	var headless bool

	cmd := &cobra.Command{
		Use:   "clip <url or slug>",
		Short: "Download a single clip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if link {
				a.quiet()
			}

			slug, err := extractSlug(args[0])
			if err != nil {
				return err
			}

			p := twitch.New(twitch.WithLogger(a.log))
			ss, err := p.GetSourceFiles(ctx, slug)
			if err != nil {
				return err
			}
			best, err := twitch.BestSource(ss)
			if err != nil {
				return err
			}
			a.log.Debug().Printf("[CLIP] Best source of %s: %s", slug, best)

			if link {
				fmt.Fprintln(cmd.OutOrStdout(), best.URL)
				return nil
			}

			path := output
			if path == "" {
				path = slug + ".mp4"
			}

			if metadata {
				creds, err := ReadCredentials(credentialsFile)
				if err != nil {
					return err
				}
				if err := p.Authenticate(ctx, creds.ClientID, creds.ClientSecret); err != nil {
					return err
				}
				clip, err := p.GetClip(ctx, slug)
				if err != nil {
					return err
				}
				if err := writeMetadata(path, clip); err != nil {
					return err
				}
			}

			confs := []download.ConfigurationFunction{download.WithLogger(a.log)}
			var prg *progress
			if !headless {
				prg = newProgress(ctx, slug, 1)
				confs = append(confs,
					download.WithProgress(prg.Task),
					download.WithBatchDone(prg.BatchDone),
				)
			}
			rr := download.Batch(ctx, []download.Task{{URL: best.URL, Path: path, Name: slug}}, nil, confs...)
			if prg != nil {
				prg.Wait()
			}
			if rr[0].Err != nil {
				return rr[0].Err
			}
			a.log.Info().Printf("[CLIP] %s downloaded", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file. Defaults to <slug>.mp4.")
	cmd.Flags().StringVarP(&credentialsFile, "credentials", "c", "credentials.json", "Twitch application credentials file.")
	cmd.Flags().BoolVarP(&link, "link", "L", false, "Print the resolved source URL instead of downloading.")
	cmd.Flags().BoolVarP(&metadata, "metadata", "m", false, "Write a JSON metadata file next to the clip.")
	cmd.Flags().BoolVar(&headless, "headless", false, "Headless mode. Progression bars are not displayed.")
	return cmd
}
