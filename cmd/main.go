package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sttock-tracker",
	Short: "A CLI for managing the sttock tracker services",
	Long:  `Sttock Tracker is a backend for tracking stock symbols with AI-generated news summaries...`,
}

func main() {

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
