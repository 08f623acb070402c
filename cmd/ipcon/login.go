package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vburojevic/instapaper-console/internal/config"
	"github.com/vburojevic/instapaper-console/internal/instapaper"
	"github.com/vburojevic/instapaper-console/internal/oauth1"
	"github.com/vburojevic/instapaper-console/internal/prompt"
)

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var username string
	var saveConsumer bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange username/password for an OAuth token and save it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cfgPath, creds, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if cfg.ConsumerKey == "" || cfg.ConsumerSecret == "" {
				return errors.New("missing consumer key/secret: set INSTAPAPER_CONSUMER_KEY and INSTAPAPER_CONSUMER_SECRET")
			}

			if username == "" {
				username = creds.Username
			}
			if username == "" {
				u, err := prompt.ReadLine(cmd.InOrStdin(), cmd.ErrOrStderr(), "Email or username: ")
				if err != nil {
					return err
				}
				username = strings.TrimSpace(u)
			}
			password := creds.Password
			if password == "" {
				pw, err := prompt.ReadPassword(cmd.ErrOrStderr(), "Password, if you have one: ", os.Stdin)
				if err != nil {
					return err
				}
				password = pw
			}

			client, err := instapaper.NewClient(cfg.APIBase, cfg.ConsumerKey, cfg.ConsumerSecret, nil, opts.timeout)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			tok, sec, err := client.XAuthAccessToken(ctx, username, password)
			// Discard the password as soon as the exchange is done.
			password = ""
			if err != nil {
				return err
			}
			cfg.OAuthToken = tok
			cfg.OAuthTokenSecret = sec
			if !saveConsumer {
				// Don't persist an env-sourced consumer pair; keep
				// whatever the file already had.
				if orig, err := config.Load(cfgPath); err == nil {
					cfg.ConsumerKey = orig.ConsumerKey
					cfg.ConsumerSecret = orig.ConsumerSecret
				}
			}

			client.Token = &oauth1.Token{Key: tok, Secret: sec}
			u, err := client.VerifyCredentials(ctx)
			if err != nil {
				return err
			}
			cfg.User.UserID = int64(u.UserID)
			cfg.User.Username = u.Username

			if err := cfg.Save(cfgPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (user_id=%d)\n", cfg.User.Username, cfg.User.UserID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Email or username")
	cmd.Flags().BoolVar(&saveConsumer, "save-consumer", false, "Save consumer key/secret in config")
	return cmd
}
