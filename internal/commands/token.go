package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tunedeck.org/tunedeck/internal/auth"
	"tunedeck.org/tunedeck/models"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage authentication tokens",
	Long:  `Generate API tokens and API keys for workstation clients`,
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue [subject]",
	Short: "Issue a JWT access token",
	Long: `Issue a JWT signed with the configured jwt_secret.

Examples:
  # Read-only token for a dashboard
  tunedeck token issue dashboard --role viewer

  # Operator token for a tuning bench
  tunedeck token issue bench-1 --role operator

  # Admin token
  tunedeck token issue admin --role admin`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenIssue,
}

var tokenAPIKeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Generate a random API key",
	Long: `Generate an API key. Add the printed key to security.api_keys in
the configuration to accept it; API keys carry operator access.`,
	RunE: runTokenAPIKey,
}

var tokenRole string

func init() {
	tokenIssueCmd.Flags().StringVar(&tokenRole, "role", "viewer", "Role to embed (admin, operator, viewer)")

	tokenCmd.AddCommand(tokenIssueCmd)
	tokenCmd.AddCommand(tokenAPIKeyCmd)
}

func runTokenIssue(cmd *cobra.Command, args []string) error {
	subject := args[0]

	role := models.Role(tokenRole)
	if !role.Valid() {
		return fmt.Errorf("unknown role %q (use admin, operator or viewer)", tokenRole)
	}

	token, err := auth.NewJWTService(cfg).GenerateToken(subject, role)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Printf("Subject:    %s\n", subject)
	fmt.Printf("Role:       %s\n", role)
	fmt.Printf("Expiration: %s\n", cfg.Security.JWTExpiration)
	fmt.Printf("\nToken:\n%s\n", token)

	return nil
}

func runTokenAPIKey(cmd *cobra.Command, args []string) error {
	key, err := auth.GenerateAPIKey()
	if err != nil {
		return fmt.Errorf("failed to generate API key: %w", err)
	}

	fmt.Printf("API key:\n%s\n\n", key)
	fmt.Println("Add it to your config.yaml:")
	fmt.Println("  security:")
	fmt.Println("    api_keys:")
	fmt.Printf("      - %s\n", key)

	return nil
}
