// Command structo runs the validate-and-retry loop from the command line:
// it loads a schema definition file, sends the input text to a completion
// provider and prints the validated JSON object on stdout.
//
// Usage:
//
//	structo -schema ticket.yaml "the app crashes when I open it"
//	cat transcript.txt | structo -schema analysis.json -provider google
//
// Credentials come from the environment (OPENAI_API_KEY or GOOGLE_API_KEY),
// optionally via a .env file in the working directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/leofalp/structo/core/analyze"
	"github.com/leofalp/structo/internal/utils"
	"github.com/leofalp/structo/providers/ai"
	"github.com/leofalp/structo/providers/ai/google"
	"github.com/leofalp/structo/providers/ai/openai"
	"github.com/leofalp/structo/schema"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	var (
		schemaPath   = flag.String("schema", "", "path to a JSON or YAML schema definition (required)")
		providerName = flag.String("provider", "openai", "completion backend: openai or google")
		model        = flag.String("model", "", "model identifier (empty uses the provider default)")
		maxAttempts  = flag.Int("max-attempts", analyze.DefaultMaxAttempts, "attempt ceiling for content failures")
		temperature  = flag.Float64("temperature", float64(analyze.DefaultTemperature), "sampling temperature")
		verbose      = flag.Bool("v", false, "log every attempt to stderr")
	)
	flag.Parse()

	if err := run(*schemaPath, *providerName, *model, *maxAttempts, *temperature, *verbose, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "structo:", err)
		os.Exit(1)
	}
}

func run(schemaPath, providerName, model string, maxAttempts int, temperature float64, verbose bool, args []string) error {
	if schemaPath == "" {
		return errors.New("-schema is required")
	}

	s, err := schema.LoadFile(schemaPath)
	if err != nil {
		return err
	}

	provider, err := selectProvider(providerName)
	if err != nil {
		return err
	}

	userText, err := readInput(args)
	if err != nil {
		return err
	}

	logLevel := slog.LevelError
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	analyzer, err := analyze.New(provider, s,
		analyze.WithModel(model),
		analyze.WithMaxAttempts(maxAttempts),
		analyze.WithTemperature(float32(temperature)),
		analyze.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := analyzer.Analyze(ctx, userText)
	if err != nil {
		printDiagnostics(result)
		return err
	}

	fmt.Println(utils.JSONToString(result.Value))
	return nil
}

func selectProvider(name string) (ai.Provider, error) {
	switch name {
	case "openai":
		return openai.New(), nil
	case "google":
		return google.New(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want openai or google)", name)
	}
}

// readInput takes the text from the remaining arguments, or from stdin when
// none are given.
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", errors.New("no input text: pass it as an argument or on stdin")
	}
	return text, nil
}

// printDiagnostics writes the last raw response and every recorded violation
// to stderr so a failed run is debuggable.
func printDiagnostics(result *analyze.Result) {
	if result == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "state: %s after %d attempt(s)\n", result.State, result.Attempts)
	if result.Failure != nil {
		fmt.Fprintln(os.Stderr, result.Failure.Describe())
	}
	if result.RawText != "" {
		fmt.Fprintln(os.Stderr, "last raw response:")
		fmt.Fprintln(os.Stderr, utils.TruncateStringDefault(result.RawText))
	}
}
