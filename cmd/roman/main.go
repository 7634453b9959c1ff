package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/roman-numerals/internal/application"
	"github.com/eugenenazirov/roman-numerals/internal/config"
	"github.com/eugenenazirov/roman-numerals/internal/logging"
	"github.com/eugenenazirov/roman-numerals/internal/numeral"
	"github.com/eugenenazirov/roman-numerals/internal/prompt"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("roman", "Roman Numeral Converter - converts a positive integer into its Roman numeral")

	convertCmd := kingpinApp.Command("convert", "Prompt for a number and print its Roman numeral").Default()

	serveCmd := kingpinApp.Command("serve", "Serve the conversion HTTP API")
	configFile := serveCmd.Flag("config", "Path to YAML configuration file").String()
	port := serveCmd.Flag("port", "HTTP port exposed by the service").String()
	historySize := serveCmd.Flag("history-size", "Number of recent conversions to keep (0 keeps the configured value)").Default("0").Int()
	redisAddr := serveCmd.Flag("redis-addr", "Redis address used to cache conversions").String()
	rateLimitRPSFlag := serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	switch kingpin.MustParse(kingpinApp.Parse(os.Args[1:])) {
	case convertCmd.FullCommand():
		logger, err := logging.NewConsole()
		if err != nil {
			panic(fmt.Sprintf("failed to initialize logger: %v", err))
		}
		code := runConvert(os.Stdin, os.Stdout, logger)
		_ = logger.Sync()
		os.Exit(code)

	case serveCmd.FullCommand():
		overrides := &config.CLIOverrides{
			ConfigFile:  *configFile,
			HistorySize: historySize,
		}
		if *port != "" {
			overrides.Port = port
		}
		if *redisAddr != "" {
			overrides.RedisAddr = redisAddr
		}
		if *rateLimitRPSFlag >= 0 {
			overrides.RateLimitRPS = rateLimitRPSFlag
		}
		if *rateLimitBurstFlag >= 0 {
			overrides.RateLimitBurst = rateLimitBurstFlag
		}
		serve(overrides)
	}
}

// runConvert performs one interactive conversion and returns the process exit code.
func runConvert(in io.Reader, out io.Writer, logger *zap.Logger) int {
	if err := prompt.Run(in, out, numeral.New()); err != nil {
		// terminate the prompt line before reporting
		_, _ = fmt.Fprintln(out)
		logger.Error("conversion failed", zap.Error(err))
		return 1
	}
	return 0
}

func serve(overrides *config.CLIOverrides) {
	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close conversion cache", zap.Error(err))
		}
	}()

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
