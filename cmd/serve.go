package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hybridzdynamics/portfolio/internal/analytics"
	"github.com/hybridzdynamics/portfolio/internal/contact"
	"github.com/hybridzdynamics/portfolio/internal/content"
	"github.com/hybridzdynamics/portfolio/internal/web"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

const (
	shutdownGrace     = 5 * time.Second
	retentionEvery    = time.Hour
	readHeaderTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	serveCmd.Flags().Int("port", 8080, "port to listen on")
	serveCmd.Flags().String("images", "./images", "directory served under /images")
	_ = v.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	_ = v.BindPFlag("images_dir", serveCmd.Flags().Lookup("images"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	gin.SetMode(appConfig.GinMode)

	site, err := content.Load()
	if err != nil {
		return err
	}

	client := contact.NewClient(appConfig.ContactEndpoint, appConfig.ContactTimeout)
	opts := web.Options{
		Site:      site,
		Sender:    client,
		Logger:    logger,
		ImagesDir: appConfig.ImagesDir,
		BaseURL:   appConfig.SiteBaseURL,
	}

	if appConfig.AnalyticsEnabled {
		store, err := analytics.Open(ctx)
		if err != nil {
			return err
		}
		defer store.Close()
		go store.RunRetention(ctx, logger, appConfig.AnalyticsRetention, retentionEvery)
		opts.Analytics = store
		logger.Info("visitor analytics enabled", "storage", "memory", "retention", appConfig.AnalyticsRetention)
	}

	if appConfig.AdminEnabled() {
		hash, err := web.HashPassword(appConfig.AdminPassword, bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing admin password: %w", err)
		}
		opts.Admin = web.AdminOptions{
			Username:      appConfig.AdminUsername,
			PasswordHash:  hash,
			SessionSecret: appConfig.SessionSecret,
		}
		logger.Info("admin dashboard available", "path", "/admin/login")
	}

	router, err := web.NewRouter(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", appConfig.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "form_endpoint", client.Endpoint())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
