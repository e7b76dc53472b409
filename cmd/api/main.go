package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "workout-service",
	Short: "Read-only lookup API for F3RVA workouts",
	Long:  `workout-service answers workout lookups by date and URL slug over HTTP, reading from the workout database.`,
}

// main boots the service: config → logger → DB → HTTP server.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
