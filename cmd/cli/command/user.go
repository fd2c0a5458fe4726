package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"bookswap/internal/microservices/http-api/repository"
	"bookswap/internal/microservices/http-api/service"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// userCmd groups account management subcommands
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

// createUserCmd registers an account the same way POST /api/register does
var createUserCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if username == "" {
			return errors.New("--username is required")
		}
		if password == "" {
			var err error
			password, err = readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
		}
		if len(password) < 8 {
			return errors.New("password must be at least 8 characters")
		}

		db, cfg, closeDB, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()

		authService := service.NewAuthService(repository.NewUserRepository(db), repository.NewTokenDenylist(nil), cfg)
		user, err := authService.Register(cmd.Context(), username, password, email)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Created user %s\nUserID: %s\n", user.Username, user.ID)
		return nil
	},
}

var listUsersCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, closeDB, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()

		users, err := repository.NewUserRepository(db).List(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tJOINED")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.CreatedAt.Format("2006-01-02"))
		}
		return w.Flush()
	},
}

// readPassword prompts without echo on a terminal and reads a plain line
// otherwise, so passwords can be piped in.
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	fmt.Fprint(prompt, "Password: ")
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	createUserCmd.Flags().StringP("username", "u", "", "username (required)")
	createUserCmd.Flags().StringP("email", "e", "", "email address")
	createUserCmd.Flags().StringP("password", "p", "", "password; prompted for when omitted")

	userCmd.AddCommand(createUserCmd, listUsersCmd)
	rootCmd.AddCommand(userCmd)
}
