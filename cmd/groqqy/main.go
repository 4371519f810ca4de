// Package main provides the interactive Groqqy chat CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/scottsen/groqqy"
	"github.com/scottsen/groqqy/config"
	"github.com/scottsen/groqqy/export"
	"github.com/scottsen/groqqy/providers"
	"github.com/scottsen/groqqy/tools"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr,
			"%sError: %v%s\n",
			colorRed, err, colorReset)
		os.Exit(1)
	}
}

func run() error {
	dir, err := config.DefaultDir()
	if err != nil {
		return err
	}
	if err := dir.Ensure(); err != nil {
		return err
	}

	cfg, err := dir.Load()
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf(
			"no API key configured: set GROQ_API_KEY or " +
				"api_key in ~/.groqqy/config.yaml")
	}

	log, err := newLogger(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	groqOpts := []providers.GroqOption{
		providers.WithModel(cfg.Model),
		providers.WithSystemInstruction(
			dir.SystemInstruction(nil, "")),
	}
	if cfg.BaseURL != "" {
		groqOpts = append(groqOpts,
			providers.WithBaseURL(cfg.BaseURL))
	}
	provider := providers.NewGroq(cfg.APIKey, groqOpts...)

	registry := tools.DefaultRegistry()

	bot := groqqy.NewBot(provider, registry,
		groqqy.WithMaxIterations(cfg.MaxIterations),
		groqqy.WithLogger(log))

	rl, err := readline.New(
		colorCyan + colorBold + "You: " + colorReset)
	if err != nil {
		return fmt.Errorf("create readline: %w", err)
	}
	defer rl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Printf("\n%sInterrupted, shutting down...%s\n",
			colorYellow, colorReset)
		cancel()
	}()
	defer signal.Stop(sigCh)

	printBanner(cfg.Model)

	for {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				printGoodbye(bot)
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		switch input {
		case "exit", "quit":
			printGoodbye(bot)
			return nil
		case "reset":
			bot.Reset()
			fmt.Printf("%sConversation reset.%s\n\n",
				colorYellow, colorReset)
			continue
		case "cost":
			fmt.Printf("%sTotal cost: $%.6f%s\n\n",
				colorDim, bot.TotalCost(), colorReset)
			continue
		case "export":
			if err := exportConversation(bot); err != nil {
				fmt.Fprintf(os.Stderr,
					"%sExport failed: %v%s\n",
					colorRed, err, colorReset)
			}
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		default:
		}

		response, cost, err := bot.Chat(ctx, input)
		if err != nil {
			fmt.Fprintf(os.Stderr,
				"%sError: %v%s\n\n",
				colorRed, err, colorReset)
			continue
		}

		fmt.Printf("\n%s%sGroqqy:%s %s\n",
			colorBold, colorGreen, colorReset, response)
		fmt.Printf("%s[cost: $%.6f, total: $%.6f]%s\n\n",
			colorDim, cost, bot.TotalCost(), colorReset)
	}
}

func printBanner(model string) {
	fmt.Printf("%s%sGroqqy%s %s(%s)%s\n",
		colorBold, colorGreen, colorReset,
		colorDim, model, colorReset)
	fmt.Printf(
		"%sCommands: 'reset' to clear history, 'cost' for "+
			"totals, 'export' to save, 'exit' to quit.%s\n\n",
		colorDim, colorReset)
}

func printGoodbye(bot *groqqy.Bot) {
	fmt.Printf("\n%sGoodbye! Total cost: $%.6f%s\n",
		colorGreen, bot.TotalCost(), colorReset)
}

func exportConversation(bot *groqqy.Bot) error {
	history := bot.History()
	if len(history) == 0 {
		fmt.Printf("%sNothing to export.%s\n\n",
			colorYellow, colorReset)
		return nil
	}
	path := fmt.Sprintf("groqqy-%s.md",
		time.Now().Format("20060102-150405"))
	if err := export.WriteMarkdown(
		path, "Groqqy Conversation", history); err != nil {
		return err
	}
	fmt.Printf("%sExported to %s%s\n\n",
		colorGreen, path, colorReset)
	return nil
}

// newLogger builds a console logger at the configured level.
// Unknown levels fall back to info.
func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.Set(level); err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
