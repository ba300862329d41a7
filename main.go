package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/xiaot623/gogo/fulfillment/internal/adapter/auth"
	"github.com/xiaot623/gogo/fulfillment/internal/adapter/errorreport"
	"github.com/xiaot623/gogo/fulfillment/internal/adapter/llm"
	"github.com/xiaot623/gogo/fulfillment/internal/config"
	"github.com/xiaot623/gogo/fulfillment/internal/domain"
	"github.com/xiaot623/gogo/fulfillment/internal/metrics"
	"github.com/xiaot623/gogo/fulfillment/internal/repository"
	"github.com/xiaot623/gogo/fulfillment/internal/service"
	handler "github.com/xiaot623/gogo/fulfillment/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("WARN: failed to load .env: %v", err)
	}

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "fulfillment",
		Short:         "Fulfillment webhook backend",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCommand(), newHistoryCommand(), newPromptsCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the webhook HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), config.Load())
		},
	}
}

func newHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history <session-id>",
		Short: "Print the chat history of a session as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()

			store, err := repository.Open(ctx, cfg.DocStoreDriver, cfg.DatabaseURL, cfg.ProjectID)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := service.New(store, llm.NewMockClient(), nil, cfg, nil)
			history, err := svc.GetChatHistory(ctx, args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(history)
		},
	}
}

func newPromptsCommand() *cobra.Command {
	prompts := &cobra.Command{
		Use:   "prompts",
		Short: "Manage LLM prompt templates",
	}
	prompts.AddCommand(&cobra.Command{
		Use:   "set <prompt-id> <text>",
		Short: "Store a prompt template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()

			store, err := repository.Open(ctx, cfg.DocStoreDriver, cfg.DatabaseURL, cfg.ProjectID)
			if err != nil {
				return err
			}
			defer store.Close()

			path := repository.DocPath(domain.PromptsCollection, domain.PromptsDocument)
			if err := store.SetFields(ctx, path, map[string]any{args[0]: args[1]}); err != nil {
				return fmt.Errorf("failed to set prompt %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "prompt %s updated\n", args[0])
			return nil
		},
	})
	return prompts
}

func newTokenProvider(cfg *config.Config) auth.TokenProvider {
	if cfg.LLMStaticToken != "" {
		return auth.NewStaticTokenProvider(cfg.LLMStaticToken)
	}
	return auth.NewGoogleIDTokenProvider()
}

func serve(ctx context.Context, cfg *config.Config) error {
	log.Printf("Starting fulfillment webhook...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Document store: %s", cfg.DocStoreDriver)
	log.Printf("LLM service URL: %s", cfg.LLMServiceURL)

	// Initialize store
	store, err := repository.Open(ctx, cfg.DocStoreDriver, cfg.DatabaseURL, cfg.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer store.Close()

	// Initialize error reporting
	reporter, err := errorreport.New(ctx, cfg.ProjectID, cfg.ServiceName, cfg.ServiceRevision)
	if err != nil {
		return fmt.Errorf("failed to initialize error reporting: %w", err)
	}
	defer reporter.Close()

	// Initialize LLM client
	llmClient := llm.NewLLMClient(cfg.LLMMode, cfg.LLMServiceURL, newTokenProvider(cfg), cfg.LLMTimeout)

	// Initialize metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize service
	svc := service.New(store, llmClient, reporter, cfg, m)

	e := handler.NewServer(svc, reg)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down fulfillment webhook...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Fulfillment webhook stopped")
	return nil
}
