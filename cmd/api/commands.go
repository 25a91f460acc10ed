package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"dreamhouse_backend/internal/auth"
	"dreamhouse_backend/internal/controller"
	"dreamhouse_backend/internal/model"
	"dreamhouse_backend/internal/session"
	"dreamhouse_backend/internal/store"
	"dreamhouse_backend/pkg/config"
	"dreamhouse_backend/pkg/cron"
	"dreamhouse_backend/pkg/database"
	"dreamhouse_backend/pkg/email"
	"dreamhouse_backend/pkg/seed"
	"dreamhouse_backend/pkg/utils/jwt"
)

// bootstrap loads config, sets up logging and opens a migrated database.
func bootstrap() (*config.Config, *logrus.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := newLogger(cfg.Log)

	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.Migrate(db, logger, model.All()...); err != nil {
		database.Close(db)
		return nil, nil, nil, err
	}
	return cfg, logger, db, nil
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close(db)

			signer, err := jwt.NewSigner(cfg.Session.Secret)
			if err != nil {
				return err
			}
			sessions := session.NewManager(signer, session.Options{
				CookieName:  cfg.Session.CookieName,
				TTL:         cfg.Session.TTL,
				RememberFor: cfg.Session.RememberFor,
				Secure:      cfg.Session.Secure,
			})

			mailer, err := email.NewMailer(cfg.Email.ResendAPIKey, cfg.Email.From, logger)
			if err != nil {
				return fmt.Errorf("initialize email service: %w", err)
			}

			s := store.New(db, logger)
			h := controller.NewHandler(s, auth.NewAuthenticator(s, logger), sessions, mailer, logger)
			app := controller.NewApp(h, controller.AppOptions{
				CORSOrigins: cfg.Server.CORSOrigins,
				AccessLog:   true,
			})

			scheduler, err := cron.NewMessageDigest(s, mailer, logger).Start(cfg.Cron.MessageDigest)
			if err != nil {
				return fmt.Errorf("schedule message digest: %w", err)
			}
			defer scheduler.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.WithField("port", cfg.Server.Port).Info("Server is running")
				errCh <- app.Listen(":" + cfg.Server.Port)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return app.ShutdownWithContext(shutdownCtx)
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close(db)

			logger.Info("Database schema is up to date")
			return nil
		},
	}
}

func newCreateAdminCommand() *cobra.Command {
	var in store.AdministratorInput

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close(db)

			in.ConfirmPassword = in.Password
			admin, created, err := seed.EnsureAdministrator(cmd.Context(), store.New(db, logger), in)
			if err != nil {
				return err
			}
			if !created {
				logger.WithField("admin_id", admin.ID).Warn("Administrator already exists")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Administrator %s created with id %d\n", admin.Email, admin.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "login email")
	cmd.Flags().StringVar(&in.Password, "password", "", "password (8-20 letters and digits)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close(db)

			return seed.SampleEstates(db, logger)
		},
	}
}
