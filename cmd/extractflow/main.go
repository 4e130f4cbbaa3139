package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BaSui01/extractflow/config"
	"github.com/BaSui01/extractflow/extract"
	"github.com/BaSui01/extractflow/internal/metrics"
	"github.com/BaSui01/extractflow/llm"
	"github.com/BaSui01/extractflow/llm/providers"
	"github.com/BaSui01/extractflow/llm/providers/groq"
)

// Version information injected at build time.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "demo":
		runDemo(os.Args[2:])
	case "extract":
		runExtract(os.Args[2:])
	case "health":
		runHealthCheck(os.Args[2:])
	case "version":
		printVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// setup loads config, validates the credential and builds the provider.
// A missing credential terminates the process before any request is made.
func setup(configPath string) (*config.Config, *zap.Logger, llm.Provider) {
	loader := config.NewLoader()
	if configPath != "" {
		loader = loader.WithConfigPath(configPath)
	}

	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.ValidateCredential(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.Log)

	provider := groq.New(providers.GroqConfig{
		BaseProviderConfig: providers.BaseProviderConfig{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout,
		},
	}, logger)

	return cfg, logger, provider
}

func extractorOptions(cfg *config.Config, logger *zap.Logger) []extract.Option {
	opts := []extract.Option{extract.WithLogger(logger)}
	if cfg.LLM.MaxTokens > 0 {
		opts = append(opts, extract.WithMaxTokens(cfg.LLM.MaxTokens))
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, extract.WithMetrics(metrics.NewCollector(nil)))
	}
	return opts
}

// runDemo extracts people from the three built-in sample reviews.
func runDemo(args []string) {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	fs.Parse(args)

	cfg, logger, provider := setup(*configPath)
	defer logger.Sync()

	opts := extractorOptions(cfg, logger)
	ctx := context.Background()

	samples := []struct {
		title string
		text  string
		many  bool
	}{
		{
			title: "Single person, first-person review",
			text: "I recently purchased the wireless headphones and I am very happy with them. " +
				"The sound quality is excellent and the battery lasts all day. " +
				"My name is Riyadh and I am from Bangladesh.",
		},
		{
			title: "Single person, third-person mention",
			text: "Emily Clarke from Canada left a glowing five-star review after using the blender " +
				"for three months. She said it handles frozen fruit without any trouble.",
		},
		{
			title: "Multiple people",
			text: "Riyadh (riyadhgenai@gmail.com) from Bangladesh wrote that the laptop stand is sturdy " +
				"and well built. Bob Smith from the USA disagreed and found it wobbly on his desk.",
			many: true,
		},
	}

	for i, sample := range samples {
		fmt.Printf("--- %d. %s ---\n", i+1, sample.title)
		fmt.Printf("Text: %s\n\n", sample.text)

		if sample.many {
			list, err := extract.ExtractMany(ctx, provider, sample.text, opts...)
			if err != nil {
				logger.Fatal("extraction failed", zap.Error(err))
			}
			printPersonList(list)
		} else {
			person, err := extract.ExtractOne(ctx, provider, sample.text, opts...)
			if err != nil {
				logger.Fatal("extraction failed", zap.Error(err))
			}
			printPerson(person)
		}
		fmt.Println()
	}
}

// runExtract extracts people from text given on the command line or stdin.
func runExtract(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	text := fs.String("text", "", "Text to extract from (reads stdin if empty)")
	many := fs.Bool("many", false, "Extract every person mentioned, not just one")
	fs.Parse(args)

	input := *text
	if input == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read stdin: %v\n", err)
			os.Exit(1)
		}
		input = string(data)
	}

	cfg, logger, provider := setup(*configPath)
	defer logger.Sync()

	opts := extractorOptions(cfg, logger)
	ctx := context.Background()

	if *many {
		list, err := extract.ExtractMany(ctx, provider, input, opts...)
		if err != nil {
			logger.Fatal("extraction failed", zap.Error(err))
		}
		printPersonList(list)
		return
	}

	person, err := extract.ExtractOne(ctx, provider, input, opts...)
	if err != nil {
		logger.Fatal("extraction failed", zap.Error(err))
	}
	printPerson(person)
}

func runHealthCheck(args []string) {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	fs.Parse(args)

	_, logger, provider := setup(*configPath)
	defer logger.Sync()

	status, err := provider.HealthCheck(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backend unreachable: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Backend healthy: %v (latency %s)\n", status.Healthy, status.Latency)
}

func printPerson(p *extract.Person) {
	fmt.Printf("  name:     %s\n", orUnknown(p.Name))
	fmt.Printf("  lastname: %s\n", orUnknown(p.LastName))
	fmt.Printf("  country:  %s\n", orUnknown(p.Country))
	fmt.Printf("  email:    %s\n", orUnknown(p.Email))
}

func printPersonList(list *extract.PersonList) {
	if len(list.People) == 0 {
		fmt.Println("  no people mentioned")
		return
	}
	for i := range list.People {
		fmt.Printf("  person %d:\n", i+1)
		p := list.People[i]
		fmt.Printf("    name:     %s\n", orUnknown(p.Name))
		fmt.Printf("    lastname: %s\n", orUnknown(p.LastName))
		fmt.Printf("    country:  %s\n", orUnknown(p.Country))
		fmt.Printf("    email:    %s\n", orUnknown(p.Email))
	}
}

func orUnknown(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "(unknown)"
	}
	return *s
}

func printVersion() {
	fmt.Printf("extractflow %s (built %s, commit %s)\n", Version, BuildTime, GitCommit)
}

func printUsage() {
	fmt.Println(`extractflow - schema-constrained entity extraction over LLM backends

Usage:
  extractflow <command> [options]

Commands:
  demo              Run the built-in sample extractions
  extract           Extract people from --text or stdin
  health            Check backend reachability
  version           Show version information
  help              Show this help

Options:
  --config <path>   Path to YAML config file
  --text <text>     Input text for the extract command
  --many            Extract every person mentioned

Environment:
  GROQ_API_KEY                API key for the Groq backend
  EXTRACTFLOW_LLM_API_KEY     Overrides GROQ_API_KEY
  EXTRACTFLOW_LLM_MODEL       Overrides the default model

Examples:
  extractflow demo
  extractflow extract --text "My name is Riyadh and I am from Bangladesh."
  extractflow extract --many < reviews.txt
  extractflow health`)
}

func initLogger(cfg config.LogConfig) *zap.Logger {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var encoderConfig zapcore.EncoderConfig
	encoding := "json"
	if cfg.Format == "console" {
		encoding = "console"
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	outputPaths := cfg.OutputPaths
	if len(outputPaths) == 0 {
		outputPaths = []string{"stderr"}
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      encoding == "console",
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      outputPaths,
		ErrorOutputPaths: []string{"stderr"},
	}

	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if cfg.EnableCaller {
		opts = append(opts, zap.AddCaller())
	}

	logger, err := zapConfig.Build(opts...)
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	return logger
}
