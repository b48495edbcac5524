package cli

import (
	"strconv"
	"strings"

	"edp-shifts/internal/models"

	"github.com/spf13/cobra"
)

type userRow struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Role     string `yaml:"role"`
	Verified bool   `yaml:"verified"`
	Created  string `yaml:"created"`
}

func newUserCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage login accounts",
	}
	cmd.AddCommand(
		newUserListCommand(e),
		newUserRegisterCommand(e),
		newUserPasswdCommand(e),
		newUserRoleCommand(e),
		newUserVerifyCommand(e),
	)
	return cmd
}

func newUserListCommand(e *env) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts ordered by username",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(output); err != nil {
				return err
			}
			users, err := e.users.List(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([]userRow, 0, len(users))
			cells := make([][]string, 0, len(users))
			for _, u := range users {
				r := userRow{
					Username: u.Username,
					Email:    u.Email,
					Role:     string(u.Role),
					Verified: u.Verified,
					Created:  u.CreatedAt.Format("2006-01-02 15:04:05"),
				}
				rows = append(rows, r)
				cells = append(cells, []string{r.Username, r.Email, r.Role, strconv.FormatBool(r.Verified), r.Created})
			}
			return render(cmd.OutOrStdout(), output, rows,
				[]string{"USERNAME", "EMAIL", "ROLE", "VERIFIED", "CREATED"}, cells)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "Output format: table or yaml")
	return cmd
}

func newUserRegisterCommand(e *env) *cobra.Command {
	var (
		username string
		email    string
		password string
		role     string
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := e.users.Register(cmd.Context(), username, email, password, parseRole(role))
			if err != nil {
				return err
			}
			return printf(cmd.OutOrStdout(), "registered %s (%s)\n", u.Username, u.Role)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Account name, usually the branch code (required)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Contact email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Initial password (required)")
	cmd.Flags().StringVarP(&role, "role", "r", string(models.RoleUser), "Role: user or admin")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUserPasswdCommand(e *env) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "passwd USERNAME",
		Short: "Reset an account's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.users.ResetPassword(cmd.Context(), args[0], password); err != nil {
				return err
			}
			return printf(cmd.OutOrStdout(), "password updated for %s\n", args[0])
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "New password (required)")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUserRoleCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "role USERNAME ROLE",
		Short: "Change an account's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := parseRole(args[1])
			if err := e.users.SetRole(cmd.Context(), args[0], role); err != nil {
				return err
			}
			return printf(cmd.OutOrStdout(), "%s is now %s\n", args[0], role)
		},
	}
}

func newUserVerifyCommand(e *env) *cobra.Command {
	var unset bool
	cmd := &cobra.Command{
		Use:   "verify USERNAME",
		Short: "Mark an account as verified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.users.SetVerified(cmd.Context(), args[0], !unset); err != nil {
				return err
			}
			return printf(cmd.OutOrStdout(), "%s verified=%t\n", args[0], !unset)
		},
	}
	cmd.Flags().BoolVar(&unset, "unset", false, "Clear the verified flag instead")
	return cmd
}

func parseRole(s string) models.UserRole {
	return models.UserRole(strings.ToLower(strings.TrimSpace(s)))
}
