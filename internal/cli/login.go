package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/atempo/attendance-tracker/internal/credential"
	"github.com/atempo/attendance-tracker/internal/model"
	"github.com/atempo/attendance-tracker/internal/remote"
)

var loginRefresh bool

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in and store the session in the system keyring",
	Long: `login exchanges credentials for a session and stores the tokens in
the system keyring. With --refresh the stored refresh token is used to
renew the session without prompting for a password.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		var sess *remote.Session
		if loginRefresh {
			refreshToken, err := credential.Get(credential.KeyRefreshToken)
			if err != nil || refreshToken == "" {
				return fmt.Errorf("no stored refresh token; run 'attendance login <email>' first")
			}
			sess, err = e.client.RefreshSession(cmd.Context(), refreshToken)
			if err != nil {
				return err
			}
		} else {
			if len(args) != 1 {
				return fmt.Errorf("email argument required (or use --refresh)")
			}
			fmt.Fprint(os.Stderr, "Password: ")
			reader := bufio.NewReader(os.Stdin)
			password, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}
			password = strings.TrimRight(password, "\r\n")

			sess, err = e.client.SignIn(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
		}

		if err := credential.Set(credential.KeyAccessToken, sess.AccessToken); err != nil {
			return err
		}
		if err := credential.Set(credential.KeyRefreshToken, sess.RefreshToken); err != nil {
			return err
		}

		if sess.User.ID != "" {
			e.cfg.UserID = sess.User.ID
			if err := model.SaveConfig(configPath, e.cfg); err != nil {
				return err
			}
		}

		log.Info("signed in",
			"user", sess.User.Email,
			"admin", sess.User.IsAdmin(),
			"expires", sess.ExpiresAt(time.Now()).Format(time.RFC3339),
		)
		return nil
	},
}

func init() {
	loginCmd.Flags().BoolVar(&loginRefresh, "refresh", false, "Renew the session with the stored refresh token")
}
