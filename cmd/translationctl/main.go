package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/translation-qa-api/internal/app"
	"github.com/noah-isme/translation-qa-api/internal/dto"
	"github.com/noah-isme/translation-qa-api/internal/repository/migrations"
	"github.com/noah-isme/translation-qa-api/internal/service"
	"github.com/noah-isme/translation-qa-api/pkg/config"
	"github.com/noah-isme/translation-qa-api/pkg/database"
	"github.com/noah-isme/translation-qa-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "translationctl",
		Short:        "Operate the translation quality workflow from the command line",
		SilenceUsage: true,
	}
	root.AddCommand(
		newMigrateCmd(),
		newRegenerateCmd(),
		newVerifyCmd(),
		newScanCmd(),
	)
	return root
}

func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logr, nil
}

func withContainer(cmd *cobra.Command, fn func(c *app.Container) error) error {
	cfg, logr, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logr.Sync() //nolint:errcheck

	container, err := app.New(cmd.Context(), cfg, logr)
	if err != nil {
		return err
	}
	defer container.Close()
	return fn(container)
}

func printJSON(w io.Writer, value interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	run := func(fn func(ctx context.Context, m *database.Migrator, out io.Writer) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, logr, err := loadRuntime()
			if err != nil {
				return err
			}
			defer logr.Sync() //nolint:errcheck

			db, err := database.NewPostgres(cmd.Context(), cfg.Database)
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer db.Close()

			migrator, err := database.NewMigrator(db, migrations.FS)
			if err != nil {
				return err
			}
			return fn(cmd.Context(), migrator, cmd.OutOrStdout())
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: run(func(ctx context.Context, m *database.Migrator, out io.Writer) error {
				versions, err := m.Up(ctx)
				if err != nil {
					return err
				}
				if len(versions) == 0 {
					fmt.Fprintln(out, "schema is up to date")
					return nil
				}
				for _, v := range versions {
					fmt.Fprintf(out, "applied %05d\n", v)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: run(func(ctx context.Context, m *database.Migrator, out io.Writer) error {
				version, err := m.Down(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "rolled back %05d\n", version)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			RunE: run(func(ctx context.Context, m *database.Migrator, out io.Writer) error {
				states, err := m.Status(ctx)
				if err != nil {
					return err
				}
				for _, st := range states {
					state := "pending"
					if st.Applied {
						state = "applied"
					}
					fmt.Fprintf(out, "%05d  %-8s %s\n", st.Version, state, st.Path)
				}
				return nil
			}),
		},
	)
	return cmd
}

func newRegenerateCmd() *cobra.Command {
	var (
		langs     []string
		keys      string
		category  string
		overwrite bool
	)
	cmd := &cobra.Command{
		Use:   "regenerate",
		Short: "Machine-translate baseline text into target languages",
		Example: `  translationctl regenerate --lang 2:Spanish --lang 3:French --category auth
  translationctl regenerate --lang 2:Spanish --keys 1,4 --overwrite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := parseTargets(langs)
			if err != nil {
				return err
			}
			keyIDs, err := parseIDs(keys)
			if err != nil {
				return err
			}
			req := dto.RegenerateRequest{Category: category, KeyIDs: keyIDs, TargetLanguages: targets, Overwrite: overwrite}
			return withContainer(cmd, func(c *app.Container) error {
				result, err := c.Regeneration.Regenerate(cmd.Context(), req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
	cmd.Flags().StringArrayVar(&langs, "lang", nil, "Target language as id:Name (repeatable)")
	cmd.Flags().StringVar(&keys, "keys", "", "Key IDs (comma-separated)")
	cmd.Flags().StringVar(&category, "category", "", "Key category, used when --keys is empty")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing translations instead of skipping them")
	_ = cmd.MarkFlagRequired("lang")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	var req dto.VerifyRequest
	cmd := &cobra.Command{
		Use:     "verify",
		Short:   "Score one candidate translation without touching the database",
		Example: `  translationctl verify --original "Sign In" --translated "Iniciar Sesión" --code es`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logr, err := loadRuntime()
			if err != nil {
				return err
			}
			defer logr.Sync() //nolint:errcheck

			dict, err := service.LoadDictionary(cfg.Translation.DictionaryFile)
			if err != nil {
				return err
			}
			verifier := service.NewVerificationService(service.VerificationDeps{Scorer: service.NewQualityScorer(dict)}, service.VerificationConfig{}, nil, logr)
			result, err := verifier.Verify(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&req.OriginalText, "original", "", "Baseline text")
	cmd.Flags().StringVar(&req.TranslatedText, "translated", "", "Candidate translation")
	cmd.Flags().StringVar(&req.TargetLanguage, "language", "", "Target language name, e.g. Spanish")
	cmd.Flags().StringVar(&req.LanguageCode, "code", "", "Target language code, used when --language is empty")
	_ = cmd.MarkFlagRequired("original")
	return cmd
}

func newScanCmd() *cobra.Command {
	var (
		languageID int64
		category   string
		keys       string
		threshold  int
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Score stored translations of a language and file issues",
		RunE: func(cmd *cobra.Command, args []string) error {
			keyIDs, err := parseIDs(keys)
			if err != nil {
				return err
			}
			req := dto.ScanRequest{LanguageID: languageID, Category: category, KeyIDs: keyIDs}
			if cmd.Flags().Changed("threshold") {
				req.Threshold = &threshold
			}
			return withContainer(cmd, func(c *app.Container) error {
				result, err := c.Verification.Scan(cmd.Context(), req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
	cmd.Flags().Int64Var(&languageID, "language-id", 0, "Language to scan")
	cmd.Flags().StringVar(&category, "category", "", "Restrict to one key category")
	cmd.Flags().StringVar(&keys, "keys", "", "Restrict to key IDs (comma-separated)")
	cmd.Flags().IntVar(&threshold, "threshold", 70, "Flag scores below this value")
	_ = cmd.MarkFlagRequired("language-id")
	return cmd
}
