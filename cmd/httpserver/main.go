// The httpserver command runs the registration backend API.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/trawers-adr/registration-backend/admintoken"
	"github.com/trawers-adr/registration-backend/api/adminhandler"
	"github.com/trawers-adr/registration-backend/api/registrationhandler"
	"github.com/trawers-adr/registration-backend/cmd/flags"
	"github.com/trawers-adr/registration-backend/httpserver"
	"github.com/trawers-adr/registration-backend/interfaces"
	"github.com/trawers-adr/registration-backend/mailer"
	"github.com/trawers-adr/registration-backend/storage"
)

var appFlags = []cli.Flag{
	flags.ListenAddrFlag,
	flags.MetricsAddrFlag,
	flags.StoreURIFlag,
	flags.SMTPHostFlag,
	flags.SMTPPortFlag,
	flags.SMTPSecureFlag,
	flags.SMTPUserFlag,
	flags.SMTPPassFlag,
	flags.MailTimeoutFlag,
	flags.AdminEmailFlag,
	flags.AdminPasswordHashFlag,
	flags.AdminTokenSecretFlag,
	flags.LogJSONFlag,
	flags.LogDebugFlag,
	flags.LogUIDFlag,
	flags.LogServiceFlag,
	flags.PprofFlag,
	flags.DrainSecondsFlag,
}

func main() {
	// Optional .env in the working directory, real env takes precedence.
	_ = godotenv.Load()

	app := &cli.App{
		Name:   "registration-server",
		Usage:  "Serve the training-program registration API",
		Flags:  appFlags,
		Action: runServer,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runServer(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)
	ctx := context.Background()

	storeURI := cCtx.String(flags.StoreURIFlag.Name)
	store, err := storage.NewStoreFactory(logger).StoreFor(ctx, storeURI)
	if err != nil {
		logger.Error("Failed to create store", "err", err)
		return err
	}
	defer store.Close()
	logger.Info("Store ready", "uri", storeURI)

	var notifier interfaces.Mailer
	if smtpHost := cCtx.String(flags.SMTPHostFlag.Name); smtpHost != "" {
		smtpMailer, err := mailer.NewSMTPMailer(mailer.Config{
			Host:       smtpHost,
			Port:       cCtx.Int(flags.SMTPPortFlag.Name),
			Secure:     cCtx.Bool(flags.SMTPSecureFlag.Name),
			Username:   cCtx.String(flags.SMTPUserFlag.Name),
			Password:   cCtx.String(flags.SMTPPassFlag.Name),
			AdminEmail: cCtx.String(flags.AdminEmailFlag.Name),
			Timeout:    cCtx.Duration(flags.MailTimeoutFlag.Name),
		}, logger)
		if err != nil {
			logger.Error("Failed to configure SMTP mailer", "err", err)
			return err
		}
		notifier = smtpMailer
	} else {
		logger.Warn("SMTP_HOST not set, notification mails are disabled")
	}

	passwordHash := cCtx.String(flags.AdminPasswordHashFlag.Name)
	tokenSecret := cCtx.String(flags.AdminTokenSecretFlag.Name)
	if passwordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH not set, admin login will fail with a configuration error")
	}
	if tokenSecret == "" {
		logger.Warn("ADMIN_TOKEN_SECRET not set, admin endpoints will fail with a configuration error")
	}
	tokens := admintoken.NewIssuer(passwordHash, tokenSecret)

	cfg := flags.ConfigureServer(cCtx, logger)
	srv, err := httpserver.New(cfg,
		registrationhandler.NewHandler(store, notifier, logger),
		adminhandler.NewHandler(store, store, tokens, logger),
	)
	if err != nil {
		logger.Error("Failed to create server", "err", err)
		return err
	}

	srv.RunInBackground()

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
	<-exit

	logger.Info("Shutting down")
	srv.Shutdown()
	return nil
}
