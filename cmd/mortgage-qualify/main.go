package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/iwvelando/mortgage-qualify/internal/config"
	"github.com/iwvelando/mortgage-qualify/internal/rates"
	"github.com/iwvelando/mortgage-qualify/internal/server"
	"github.com/iwvelando/mortgage-qualify/pkg/constants"
	"github.com/iwvelando/mortgage-qualify/pkg/output"
	"github.com/iwvelando/mortgage-qualify/pkg/pricing"
	"github.com/iwvelando/mortgage-qualify/pkg/qualify"
	"github.com/iwvelando/mortgage-qualify/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "start the HTTP API instead of running configured scenarios")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	engine := qualify.NewEngine(logger, conf.EngineConfig())

	if *serve {
		runServer(logger, *serverConfigLocation, engine)
		return
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Scenarios that name a state fill missing financing rates from the
	// market-rate service; the CLI path runs against the in-memory cache.
	rateService := rates.NewService(logger, rates.NewMemoryCache())

	// Qualify every configured scenario.
	results := make([]output.Qualification, 0, len(conf.Scenarios))
	for _, scenario := range conf.Scenarios {
		result, err := engine.Qualify(scenario.Request())
		if err != nil {
			logger.Fatal(fmt.Sprintf("failed to qualify scenario %s", scenario.Name),
				zap.String("op", "main"),
				zap.Error(err),
			)
		}

		qualification := output.Qualification{Name: scenario.Name, Result: result}
		if scenario.Financing != nil {
			var quote *rates.Quote
			if scenario.Financing.State != "" {
				q := rateService.Lookup(context.Background(), scenario.Financing.State)
				quote = &q
			}
			price, err := pricing.Invert(result.MaxPITI, scenario.Terms(quote))
			if err != nil {
				logger.Fatal(fmt.Sprintf("failed to invert purchase price for scenario %s", scenario.Name),
					zap.String("op", "main"),
					zap.Error(err),
				)
			}
			qualification.Price = &price
		}
		results = append(results, qualification)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results)
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	}
}

func runServer(logger *zap.Logger, serverConfigLocation string, engine *qualify.Engine) {
	serverConf, err := server.LoadConfig(serverConfigLocation)
	if err != nil {
		logger.Fatal("failed to load server configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	var rateService *rates.Service
	if serverConf.RedisAddress != "" {
		rateService = rates.NewService(logger, rates.NewRedisCache(serverConf.RedisAddress))
	} else {
		rateService = rates.NewService(logger, rates.NewMemoryCache())
	}

	handler := server.NewHandler(logger, serverConf.BodySizeBytes(), version, engine, rateService)

	logger.Info("starting HTTP server",
		zap.String("op", "main"),
		zap.String("address", serverConf.Address),
	)
	if err := http.ListenAndServe(serverConf.Address, handler); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
