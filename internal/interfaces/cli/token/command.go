package token

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/auth"
	"github.com/HIMU202508/TicketingSystem/internal/infrastructure/config"
	"github.com/HIMU202508/TicketingSystem/internal/shared/authorization"
	"github.com/HIMU202508/TicketingSystem/internal/shared/biztime"
)

var (
	env     string
	subject string
	role    string
	ttl     time.Duration
	asJSON  bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Bearer token tools",
		Long:  `Mint bearer tokens for staff members and automation.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(newIssueCommand())

	return cmd
}

func newIssueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue an access token",
		Long:  `Issue a signed access token for the given subject and role (admin, technician, viewer).`,
		RunE:  runIssue,
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Token subject, usually the staff member's name (required)")
	cmd.Flags().StringVarP(&role, "role", "r", string(authorization.RoleViewer), "Role granted by the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default: auth.access_exp_minutes)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the token with its expiry as JSON")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func runIssue(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	userRole, err := parseRole(role)
	if err != nil {
		return err
	}

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AccessExpMinutes)
	issued, err := jwtService.Issue(subject, userRole, ttl)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	return printToken(cmd.OutOrStdout(), issued, asJSON)
}

// parseRole rejects unknown roles instead of silently downgrading them to viewer.
func parseRole(s string) (authorization.UserRole, error) {
	r := authorization.UserRole(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q (want admin, technician or viewer)", s)
	}
	return r, nil
}

func printToken(w io.Writer, issued *auth.IssuedToken, asJSON bool) error {
	if !asJSON {
		_, err := fmt.Fprintln(w, issued.AccessToken)
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"access_token": issued.AccessToken,
		"expires_at":   issued.ExpiresAt.Format(time.RFC3339),
		"expires_in":   issued.ExpiresIn,
	})
}
