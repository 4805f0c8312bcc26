package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mofferator/Twitch-Clip-Downloader-CLI/mylog"
)

type app struct {
	log   *mylog.MyLog
	debug bool
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "twdl",
		Short:         "Batch downloader for Twitch clips",
		Version:       fmt.Sprintf("%s, commit %s, built at %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl := "INFO"
			if a.debug {
				lvl = "DEBUG"
			}
			var err error
			a.log, err = mylog.NewLog(lvl, log.New(os.Stderr, "", log.LstdFlags))
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Debug mode.")
	rootCmd.AddCommand(newClipCommand(a))
	rootCmd.AddCommand(newChannelCommand(a))
	return rootCmd
}

// quiet drops informational messages when URLs are the command output
func (a *app) quiet() {
	if !a.log.IsDebug() {
		a.log, _ = mylog.NewLog("ERROR", log.New(os.Stderr, "", log.LstdFlags))
	}
}
