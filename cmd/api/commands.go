package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"garmin-gateway/configs"
	_ "garmin-gateway/docs"
	"garmin-gateway/internal/domain"
	protocol "garmin-gateway/protocal"

	"github.com/spf13/cobra"
)

var (
	env        string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:           "garmin-gateway",
	Short:         "Garmin Connect health data gateway",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := configs.InitViper(configPath, env); err != nil {
			return err
		}
		configs.ConfigureLogging(configs.GetViper().App)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Authenticate and serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return protocol.ServeHTTP(configs.GetViper())
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in interactively and store tokens",
	Long:  "Log in with GARMIN_EMAIL and GARMIN_PASSWORD, answering an MFA challenge on stdin if Garmin asks for one, and write the tokens to the token store.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configs.GetViper().Garmin
		auth, err := protocol.NewAuthService(cfg)
		if err != nil {
			return err
		}
		prompt := stdinPrompt(cmd.InOrStdin(), cmd.ErrOrStderr())
		session, err := auth.Login(context.Background(), cfg.Email, cfg.Password, prompt)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s, tokens stored in %s\n", session.Account, cfg.TokenStore)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Delete stored tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configs.GetViper().Garmin
		auth, err := protocol.NewAuthService(cfg)
		if err != nil {
			return err
		}
		if err := auth.Logout(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed tokens from %s\n", cfg.TokenStore)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", os.Getenv("APP_ENV"), "the environment to use")
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", "./configs", "directory holding config.yaml")
	rootCmd.AddCommand(serveCmd, loginCmd, logoutCmd)
}

// stdinPrompt asks for the MFA code on out and reads one line from in
func stdinPrompt(in io.Reader, out io.Writer) domain.MFAPrompt {
	reader := bufio.NewReader(in)
	return func(ctx context.Context) (string, error) {
		fmt.Fprint(out, "Enter MFA code: ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read MFA code: %w", err)
		}
		return strings.TrimSpace(line), nil
	}
}
