package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "go.uber.org/automaxprocs"

	"copyhub/internal/adapter/repo"
	"copyhub/internal/campaign"
	"copyhub/internal/http/handlers"
	httpapi "copyhub/internal/http/httpapi"
	"copyhub/internal/infra"
	"copyhub/internal/infra/credentials"
	"copyhub/internal/infra/geoip"
	"copyhub/internal/middleware"
	"copyhub/internal/providers/textgen"
	"copyhub/internal/yadirect"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	lexicon, err := yadirect.LoadLexicon(cfg.LexiconFile)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.LexiconFile).Msg("failed to load lexicon")
	}

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()
	sqlRunner := infra.NewSQLRunner(dbpool, logger)

	apiKey, folderID := cfg.YandexAPIKey, cfg.YandexFolderID
	if apiKey == "" || folderID == "" {
		lookupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		creds, err := credentials.NewStore(sqlRunner).YandexCredentials(lookupCtx)
		cancel()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to load stored yandexgpt credentials")
		} else if creds.Complete() {
			apiKey, folderID = creds.APIKey, creds.FolderID
		}
	}
	gen := textgen.NewYandexGPT(textgen.YandexOptions{
		APIKey:      apiKey,
		FolderID:    folderID,
		Model:       cfg.YandexModel,
		BaseURL:     cfg.YandexBaseURL,
		Temperature: cfg.YandexTemperature,
		MaxTokens:   cfg.YandexMaxTokens,
		Timeout:     cfg.GeneratorTimeout,
	})
	if !gen.Configured() {
		logger.Warn().Msg("yandexgpt credentials missing; generation endpoints will return 503")
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()
	var countryLookup middleware.CountryLookup
	if resolver != nil {
		countryLookup = resolver.CountryCode
	}

	pipeline := yadirect.NewPipeline(gen, yadirect.PipelineOptions{
		Validator: yadirect.NewValidator(lexicon),
		Logger:    logger,
	})
	app := handlers.NewApp(
		repo.NewGenerationRepository(sqlRunner),
		repo.NewUsageRepository(sqlRunner),
		pipeline,
		campaign.NewService(gen, logger),
		logger,
	)

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		CountryLookup:   countryLookup,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
