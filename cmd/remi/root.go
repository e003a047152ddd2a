package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "remi",
		Short: "remi is a conversational reminder and focus assistant",
		Long: `remi turns plain sentences like "remind me to drink water every 30 minutes"
or "buy milk at 17:30" into scheduled reminders, tasks, and habits, and runs
Pomodoro focus sessions on the side.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "path to config file (default ~/.remi/config.yaml)")
	root.PersistentFlags().String("data-dir", "", "override the data directory")
	_ = viper.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("store.dir", root.PersistentFlags().Lookup("data-dir"))

	root.AddCommand(newChatCmd())
	root.AddCommand(newServeCmd())
	return root
}
