package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"linkshortener/internal/config"
	"linkshortener/internal/repository/sqlite"
	"linkshortener/internal/service"
	"linkshortener/internal/slug"
	"linkshortener/internal/sweeper"
	"linkshortener/internal/transport/client"
	httpTransport "linkshortener/internal/transport/http"
)

var rootCmd = &cobra.Command{
	Use:   "linkshortener",
	Short: "A link shortening service written in Go",
	Long:  "A link shortening service with SQLite backend, click tracking, and time-based link expiry",
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the link shortening servers",
	RunE:  runServer,
}

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for interacting with the management API",
}

var createCmd = &cobra.Command{
	Use:   "create [TARGET_URL]",
	Short: "Create a link",
	Args:  cobra.ExactArgs(1),
	RunE:  runCreateLink,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [SLUG]",
	Short: "Delete a link",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteLink,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all links",
	RunE:  runListLinks,
}

var clicksCmd = &cobra.Command{
	Use:   "clicks [SLUG]",
	Short: "List the click events recorded for a link",
	Args:  cobra.ExactArgs(1),
	RunE:  runListClicks,
}

func init() {
	// Server command flags
	serverCmd.Flags().String("api-port", "3000", "Management API port")
	serverCmd.Flags().String("redirect-port", "3001", "Redirect server port")
	serverCmd.Flags().String("forward-url", "http://localhost:3001", "Public base URL of the redirect server")
	serverCmd.Flags().String("cors-origins", "*", "Comma-separated list of allowed CORS origins, or * for any")
	serverCmd.Flags().String("db-path", "links.db", "Database file path")
	serverCmd.Flags().Duration("sweep-interval", time.Hour, "Expiry sweep interval")

	// Slug generation flags
	serverCmd.Flags().Int("slug-length", 4, "Number of characters in generated slugs")
	serverCmd.Flags().Int("slug-max-attempts", 100, "Retry budget for slug generation collisions")

	// Logging configuration flags
	serverCmd.Flags().BoolP("verbose", "v", false, "Enable verbose HTTP request logging")

	// Client command flags
	clientCmd.PersistentFlags().StringP("server-url", "u", "http://localhost:3000", "Management API URL")
	createCmd.Flags().String("slug", "", "Use this slug instead of generating one")
	createCmd.Flags().Int64("expires-in-secs", 0, "Expire the link this many seconds from now")

	// Add subcommands
	clientCmd.AddCommand(createCmd, deleteCmd, listCmd, clicksCmd)
	rootCmd.AddCommand(serverCmd, clientCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	// Get configuration from CLI flags
	apiPort, _ := cmd.Flags().GetString("api-port")
	redirectPort, _ := cmd.Flags().GetString("redirect-port")
	forwardURL, _ := cmd.Flags().GetString("forward-url")
	corsOrigins, _ := cmd.Flags().GetString("cors-origins")
	dbPath, _ := cmd.Flags().GetString("db-path")
	sweepInterval, _ := cmd.Flags().GetDuration("sweep-interval")
	slugLength, _ := cmd.Flags().GetInt("slug-length")
	slugMaxAttempts, _ := cmd.Flags().GetInt("slug-max-attempts")
	verbose, _ := cmd.Flags().GetBool("verbose")

	slugConfig := slug.Config{
		Length:      slugLength,
		MaxAttempts: slugMaxAttempts,
	}

	cfg, err := config.New(apiPort, redirectPort, forwardURL, corsOrigins, dbPath, sweepInterval, verbose, slugConfig)
	if err != nil {
		return fmt.Errorf("failed to create configuration: %w", err)
	}

	log.Printf("Starting link shortener with config: api-port=%s redirect-port=%s", cfg.Server.APIPort, cfg.Server.RedirectPort)

	// Initialize database
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize slug generator
	generator, err := slug.NewRandomGenerator(cfg.Slug, repo)
	if err != nil {
		return fmt.Errorf("failed to create slug generator: %w", err)
	}
	log.Printf("Using %s slug generator", generator.Type())

	links := service.NewLinkService(repo, generator)
	defer func() {
		if err := links.Close(); err != nil {
			log.Printf("Error closing service: %v", err)
		}
	}()

	// Start the expiry sweeper
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expirySweeper := sweeper.New(repo, cfg.Sweeper.Interval)
	if err := expirySweeper.Start(ctx); err != nil {
		return fmt.Errorf("failed to start expiry sweeper: %w", err)
	}
	defer func() {
		if err := expirySweeper.Stop(); err != nil {
			log.Printf("Error stopping expiry sweeper: %v", err)
		}
	}()

	// Create and start both HTTP servers
	apiServer := httpTransport.NewAPIServer(links, cfg)
	redirectServer := httpTransport.NewRedirectServer(links, cfg)

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 2)
	go func() {
		errChan <- apiServer.Start()
	}()
	go func() {
		errChan <- redirectServer.Start()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down gracefully...", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during API server shutdown: %v", err)
		}
		if err := redirectServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during redirect server shutdown: %v", err)
		}
	}

	log.Println("Servers stopped")
	return nil
}

func runCreateLink(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	customSlug, _ := cmd.Flags().GetString("slug")

	var expiresInSecs *int64
	if cmd.Flags().Changed("expires-in-secs") {
		secs, _ := cmd.Flags().GetInt64("expires-in-secs")
		expiresInSecs = &secs
	}

	c := client.NewClient(serverURL)
	commands := client.NewCommands(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return commands.Create(ctx, args[0], customSlug, expiresInSecs)
}

func runDeleteLink(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	c := client.NewClient(serverURL)
	commands := client.NewCommands(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return commands.Delete(ctx, args[0])
}

func runListLinks(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	c := client.NewClient(serverURL)
	commands := client.NewCommands(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return commands.List(ctx)
}

func runListClicks(cmd *cobra.Command, args []string) error {
	serverURL, _ := cmd.Flags().GetString("server-url")
	c := client.NewClient(serverURL)
	commands := client.NewCommands(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return commands.Clicks(ctx, args[0])
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
