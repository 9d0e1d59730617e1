package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"copyhub/internal/domain"
	"copyhub/internal/infra"
	"copyhub/internal/infra/credentials"
	"copyhub/internal/providers/textgen"
	"copyhub/internal/sqlinline"
	"copyhub/internal/yadirect"
)

// newGenerator builds the generator used by the generate command.
var newGenerator = func(opts textgen.YandexOptions) textgen.Generator {
	return textgen.NewYandexGPT(opts)
}

func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "copyctl",
		Short:         "Утилиты обслуживания copyhub",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.CompletionOptions.HiddenDefaultCmd = true

	root.AddCommand(newMigrateCmd(stdout), newSetKeyCmd(stdout), newGenerateCmd(stdout, stderr), newValidateCmd(stdout))
	return root
}

func databaseURL(flagValue string) (string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		return v, nil
	}
	return "", errors.New("DATABASE_URL is required via --database-url or environment")
}

func newMigrateCmd(stdout io.Writer) *cobra.Command {
	var dbFlag string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Создать таблицы generations, usage_events и integration_tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, err := databaseURL(dbFlag)
			if err != nil {
				return err
			}
			db, err := sql.Open("postgres", dsn)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if _, err := db.ExecContext(ctx, sqlinline.Schema); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
			fmt.Fprintln(stdout, "schema applied")
			return nil
		},
	}
	cmd.Flags().StringVar(&dbFlag, "database-url", "", "PostgreSQL DSN (default $DATABASE_URL)")
	return cmd
}

func newSetKeyCmd(stdout io.Writer) *cobra.Command {
	var dbFlag, keyFlag, folderFlag string
	cmd := &cobra.Command{
		Use:   "set-key",
		Short: "Сохранить API-ключ и каталог YandexGPT в базе",
		RunE: func(cmd *cobra.Command, args []string) error {
			key := firstNonEmpty(keyFlag, os.Getenv("YANDEX_CLOUD_API_KEY"))
			folder := firstNonEmpty(folderFlag, os.Getenv("YANDEX_CLOUD_FOLDER"))
			if key == "" || folder == "" {
				return errors.New("api key and folder are required via --key/--folder or YANDEX_CLOUD_API_KEY/YANDEX_CLOUD_FOLDER")
			}
			dsn, err := databaseURL(dbFlag)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			pool, err := pgxpool.New(ctx, dsn)
			if err != nil {
				return fmt.Errorf("create pool: %w", err)
			}
			defer pool.Close()

			logger := infra.NewLogger("cli").With().Str("cmd", "set-key").Logger()
			store := credentials.NewStore(infra.NewSQLRunner(pool, logger))
			if err := store.SetYandexCredentials(ctx, key, folder); err != nil {
				return fmt.Errorf("persist yandexgpt credentials: %w", err)
			}
			fmt.Fprintln(stdout, "YandexGPT credentials stored successfully")
			return nil
		},
	}
	cmd.Flags().StringVar(&dbFlag, "database-url", "", "PostgreSQL DSN (default $DATABASE_URL)")
	cmd.Flags().StringVar(&keyFlag, "key", "", "YandexGPT API key (default $YANDEX_CLOUD_API_KEY)")
	cmd.Flags().StringVar(&folderFlag, "folder", "", "Yandex Cloud folder id (default $YANDEX_CLOUD_FOLDER)")
	return cmd
}

type generateFlags struct {
	input    domain.CampaignInput
	tone     string
	lexicon  string
	model    string
	verbose  bool
	fromFile string
}

func newGenerateCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Сгенерировать объявления Яндекс.Директ и вывести JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := flags.input
			if flags.fromFile != "" {
				raw, err := os.ReadFile(flags.fromFile)
				if err != nil {
					return fmt.Errorf("read brief: %w", err)
				}
				if err := json.Unmarshal(raw, &in); err != nil {
					return fmt.Errorf("decode brief: %w", err)
				}
			}
			if flags.tone != "" {
				in.Tone = domain.Tone(flags.tone)
			}

			lex, err := yadirect.LoadLexicon(firstNonEmpty(flags.lexicon, os.Getenv("LEXICON_FILE")))
			if err != nil {
				return err
			}
			level := zerolog.WarnLevel
			if flags.verbose {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(stderr).Level(level).With().Timestamp().Str("cmd", "generate").Logger()

			gen := newGenerator(textgen.YandexOptions{
				APIKey:   os.Getenv("YANDEX_CLOUD_API_KEY"),
				FolderID: os.Getenv("YANDEX_CLOUD_FOLDER"),
				Model:    firstNonEmpty(flags.model, os.Getenv("YANDEX_MODEL")),
				BaseURL:  os.Getenv("YANDEX_BASE_URL"),
			})
			pipeline := yadirect.NewPipeline(gen, yadirect.PipelineOptions{
				Validator: yadirect.NewValidator(lex),
				Logger:    logger,
			})
			res, err := pipeline.Run(logger.WithContext(cmd.Context()), in)
			if err != nil {
				return err
			}
			if res.Refused {
				return errors.New("модель отказалась генерировать объявление: измените описание продукта или ключевые слова")
			}
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"results": res.Ads, "unstructured": res.Unstructured})
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.input.Product, "product", "", "описание продукта")
	f.StringVar(&flags.input.Audience, "audience", "", "целевая аудитория")
	f.StringVar(&flags.input.Keywords, "keywords", "", "ключевые фразы через запятую")
	f.StringVar(&flags.input.USP, "usp", "", "уникальное торговое предложение")
	f.StringVar(&flags.tone, "tone", "", "тон: neutral, friendly, expert, emotional")
	f.IntVarP(&flags.input.Count, "count", "n", 3, "число вариантов (1-10)")
	f.StringVar(&flags.fromFile, "brief", "", "JSON-файл с брифом (поля как в API)")
	f.StringVar(&flags.lexicon, "lexicon", "", "YAML со словарями (default $LEXICON_FILE)")
	f.StringVar(&flags.model, "model", "", "модель YandexGPT (default $YANDEX_MODEL)")
	f.BoolVar(&flags.verbose, "verbose", false, "подробный лог в stderr")
	return cmd
}

func newValidateCmd(stdout io.Writer) *cobra.Command {
	var title, text, keywords, usp, lexicon string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Проверить объявление по правилам Яндекс.Директ",
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := yadirect.LoadLexicon(firstNonEmpty(lexicon, os.Getenv("LEXICON_FILE")))
			if err != nil {
				return err
			}
			res := yadirect.NewValidator(lex).Validate(title, text, keywords, usp)
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
			if !res.IsValid {
				return fmt.Errorf("ad is invalid: %s", strings.Join(res.Errors, "; "))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&title, "title", "", "заголовок")
	f.StringVar(&text, "text", "", "текст объявления")
	f.StringVar(&keywords, "keywords", "", "ключевые фразы")
	f.StringVar(&usp, "usp", "", "УТП")
	f.StringVar(&lexicon, "lexicon", "", "YAML со словарями (default $LEXICON_FILE)")
	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
