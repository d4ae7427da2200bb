package main

import (
	"context"
	"customerwizard/wizard/internal/config"
	"customerwizard/wizard/internal/container"
	"customerwizard/wizard/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "wizard",
		Short:         "Customer form wizard backed by a category catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml")

	loadConfig := func() (*config.Config, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := container.SetupLogging(cfg.Log); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the catalog and serve the wizard over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the catalog and report its shape or the first malformed node",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return validate(cmd, cfg)
		},
	}

	var customerType string
	var options []string
	filterCmd := &cobra.Command{
		Use:   "filter",
		Short: "Print the part of a customer type's tree matching the given options",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return filter(cmd, cfg, customerType, options)
		},
	}
	filterCmd.Flags().StringVarP(&customerType, "type", "t", "", "customer type")
	filterCmd.Flags().StringArrayVarP(&options, "option", "o", nil, "selected option, repeatable; values are taken verbatim")
	_ = filterCmd.MarkFlagRequired("type")

	rootCmd.AddCommand(serveCmd, validateCmd, filterCmd)
	rootCmd.RunE = serveCmd.RunE

	return rootCmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting customer wizard...")

	app, err := container.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("application exited with error: %w", err)
	}

	log.Info("Application finished successfully")
	return nil
}

func validate(cmd *cobra.Command, cfg *config.Config) error {
	catalog, err := container.LoadCatalog(cmd.Context(), cfg)
	if err != nil {
		var malformed *domain.MalformedCatalogError
		if errors.As(err, &malformed) {
			fmt.Fprintf(cmd.OutOrStdout(), "catalog is malformed at %q: %s\n", malformed.Path, malformed.Reason)
		}
		return err
	}

	out := cmd.OutOrStdout()
	for _, customerType := range catalog.CustomerTypes() {
		subtree, _ := catalog.Subtree(customerType)
		stats := subtree.Stats()
		fmt.Fprintf(out, "%s: %d categories, %d leaves, %d options\n",
			customerType, stats.Branches, stats.Leaves, stats.Options)
	}
	fmt.Fprintln(out, "catalog is valid")
	return nil
}

func filter(cmd *cobra.Command, cfg *config.Config, customerType string, options []string) error {
	catalog, err := container.LoadCatalog(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if !catalog.Has(customerType) {
		return fmt.Errorf("unknown customer type %q", customerType)
	}

	selected := catalog.Filter(customerType, domain.NewSelection(options...))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(selected)
}
