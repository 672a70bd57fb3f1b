package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag   string
	tokenFlag string
	rootCmd   = &cobra.Command{
		Use:   "intakectl",
		Short: "CLI client for the symptom intake REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Intake service base URL")
	rootCmd.PersistentFlags().StringVarP(&tokenFlag, "token", "t", "", "Bearer token (omit for anonymous)")

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new diagnostic session",
		RunE: func(cmd *cobra.Command, args []string) error {
			symptoms, _ := cmd.Flags().GetString("symptoms")
			return runStart(apiFlag, tokenFlag, symptoms, os.Stdout)
		},
	}
	startCmd.Flags().StringP("symptoms", "s", "", "Free-text symptom description")
	rootCmd.AddCommand(startCmd)

	statusCmd := &cobra.Command{
		Use:   "status <session-id>",
		Short: "Show session progress and remaining TTL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(apiFlag, tokenFlag, args[0], os.Stdout)
		},
	}
	rootCmd.AddCommand(statusCmd)

	answerCmd := &cobra.Command{
		Use:   "answer <session-id> <question-id> <yes|no>",
		Short: "Submit one answer",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value bool
			switch args[2] {
			case "yes", "y", "true":
				value = true
			case "no", "n", "false":
				value = false
			default:
				return fmt.Errorf("answer must be yes or no, got %q", args[2])
			}
			return runAnswer(apiFlag, tokenFlag, args[0], args[1], value, os.Stdout)
		},
	}
	rootCmd.AddCommand(answerCmd)

	recsCmd := &cobra.Command{
		Use:   "recommendations",
		Short: "List archived recommendations (requires --token)",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")
			if tokenFlag == "" {
				return fmt.Errorf("--token required")
			}
			return runRecommendations(apiFlag, tokenFlag, limit, offset, os.Stdout)
		},
	}
	recsCmd.Flags().IntP("limit", "l", 20, "Page size")
	recsCmd.Flags().IntP("offset", "o", 0, "Page offset")
	rootCmd.AddCommand(recsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
