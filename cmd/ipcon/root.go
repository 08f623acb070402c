package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vburojevic/instapaper-console/internal/config"
	"github.com/vburojevic/instapaper-console/internal/console"
	"github.com/vburojevic/instapaper-console/internal/gateway"
	"github.com/vburojevic/instapaper-console/internal/instapaper"
	"github.com/vburojevic/instapaper-console/internal/logging"
	"github.com/vburojevic/instapaper-console/internal/oauth1"
	"github.com/vburojevic/instapaper-console/internal/segment"
	"github.com/vburojevic/instapaper-console/internal/version"
)

type rootOptions struct {
	configPath string
	apiBase    string
	limit      int
	wrap       int
	timeout    time.Duration
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "ipcon",
		Short:        "Interactive console for your Instapaper bookmarks",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, opts)
		},
	}
	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "Path to config file (default: user config dir)")
	f.StringVar(&opts.apiBase, "api-base", "", "API base URL (default https://www.instapaper.com)")
	f.DurationVar(&opts.timeout, "timeout", 15*time.Second, "HTTP timeout")
	f.BoolVar(&opts.debug, "debug", false, "Debug logging (never logs secrets)")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Bookmark fetch limit (default from config, 25)")
	cmd.Flags().IntVar(&opts.wrap, "wrap", -1, "Display wrap width, 0 disables (default from config)")

	cmd.AddCommand(newLoginCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func loadConfig(opts *rootOptions) (*config.Config, string, config.Credentials, error) {
	cfgPath := opts.configPath
	if cfgPath == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return nil, "", config.Credentials{}, err
		}
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, "", config.Credentials{}, err
	}
	creds := config.ApplyEnv(cfg)
	if opts.apiBase != "" {
		cfg.APIBase = opts.apiBase
	}
	return cfg, cfgPath, creds, nil
}

func runConsole(cmd *cobra.Command, opts *rootOptions) error {
	cfg, _, creds, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if cfg.ConsumerKey == "" || cfg.ConsumerSecret == "" {
		return errors.New("missing consumer key/secret: set INSTAPAPER_CONSUMER_KEY and INSTAPAPER_CONSUMER_SECRET or run 'ipcon login'")
	}

	logDir, err := config.LogDir()
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.New(logDir, opts.debug)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()
	client, err := instapaper.NewClient(cfg.APIBase, cfg.ConsumerKey, cfg.ConsumerSecret, nil, opts.timeout)
	if err != nil {
		return err
	}
	if opts.debug {
		client.EnableDebug(logger)
	}
	client.SetRetry(2, 500*time.Millisecond)

	switch {
	case cfg.HasAuth():
		client.Token = &oauth1.Token{Key: cfg.OAuthToken, Secret: cfg.OAuthTokenSecret}
	case creds.Username != "" && creds.Password != "":
		// .env credentials: exchange for a session token without saving it.
		tok, sec, err := client.XAuthAccessToken(ctx, creds.Username, creds.Password)
		creds.Password = ""
		if err != nil {
			return fmt.Errorf("login with .env credentials: %w", err)
		}
		client.Token = &oauth1.Token{Key: tok, Secret: sec}
	default:
		return errors.New("not logged in; run 'ipcon login' or set INSTAPAPER_USERNAME/INSTAPAPER_PASSWORD")
	}

	limit := cfg.Defaults.BookmarkLimit
	if opts.limit > 0 {
		limit = opts.limit
	}
	wrap := cfg.Defaults.WrapWidth
	if opts.wrap >= 0 {
		wrap = opts.wrap
	}

	gw := gateway.New(client, logger)
	con := console.New(gw, segment.NewUnicode(), console.Options{
		BookmarkLimit: limit,
		WrapWidth:     wrap,
	}, logger)
	return con.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
}
