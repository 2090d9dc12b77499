package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alerta-nampula/alerta/internal/config"
	"github.com/alerta-nampula/alerta/internal/notify"
	"github.com/alerta-nampula/alerta/internal/portal"
	"github.com/alerta-nampula/alerta/internal/store"
	"github.com/alerta-nampula/alerta/internal/ussd"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the portal server",
		Long:  "Launches the HTTP server: USSD gateway callback, public JSON API,\nback-office API, and the daily staff digest scheduler.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "alerta.yaml", "path to config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}

	notifier, err := buildNotifiers(cfg.Notify)
	if err != nil {
		return err
	}
	if notifier != nil {
		defer notifier.Close()
	}

	st, err := store.New(store.Opts{DB: gormDB, Notifier: notifier})
	if err != nil {
		return err
	}
	interpreter, err := ussd.New(ussd.Opts{Store: st, Site: ussd.SiteInfo{
		Name:          cfg.Site.Name,
		EmergencyLine: cfg.Site.EmergencyLine,
		MedicalLine:   cfg.Site.MedicalLine,
	}})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	// Daily digest for the staff channels.
	if notifier != nil && cfg.Notify.DigestCron != "" {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(cfg.Notify.DigestCron, func() {
			ev, err := notify.BuildDailyDigest(gormDB)
			if err != nil {
				log.Printf("digest: %v", err)
				return
			}
			if ev == nil {
				return
			}
			if err := notifier.Send(context.Background(), *ev); err != nil {
				log.Printf("digest: send: %v", err)
			}
		})
		if err != nil {
			return fmt.Errorf("schedule digest %q: %w", cfg.Notify.DigestCron, err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	return portal.Start(ctx, portal.StartOpts{
		Store:       st,
		Interpreter: interpreter,
		Port:        cfg.Server.Port,
		Out:         cmd.OutOrStdout(),
	})
}

// buildNotifiers assembles the configured staff channels. Returns nil when
// none are configured.
func buildNotifiers(cfg config.NotifyConfig) (notify.Notifier, error) {
	var multi notify.Multi

	if cfg.SlackToken != "" {
		n, err := notify.NewSlack(notify.SlackOpts{Token: cfg.SlackToken, ChannelID: cfg.SlackChannel})
		if err != nil {
			return nil, err
		}
		multi = append(multi, n)
	}
	if cfg.DiscordToken != "" {
		n, err := notify.NewDiscord(notify.DiscordOpts{Token: cfg.DiscordToken, ChannelID: cfg.DiscordChannel})
		if err != nil {
			return nil, err
		}
		multi = append(multi, n)
	}

	if len(multi) == 0 {
		return nil, nil
	}
	return multi, nil
}
