package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/petasbytes/agentcli/conversation"
	"github.com/petasbytes/agentcli/internal/config"
	"github.com/petasbytes/agentcli/internal/display"
	"github.com/petasbytes/agentcli/internal/provider"
	"github.com/petasbytes/agentcli/internal/runner"
	"github.com/petasbytes/agentcli/tools"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "agent: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	verbose := flag.Bool("verbose", false, "enable debug logging")
	configPath := flag.String("config", "", "path to a config file (overrides the layered default)")
	flag.Parse()

	logrus.SetOutput(os.Stderr)
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	// The SDK reads the key itself; checking up front gives a clearer error.
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		return errors.New("missing ANTHROPIC_API_KEY; export it before running")
	}

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client := provider.NewClient()
	model := provider.DefaultModel
	if cfg.Model != "" {
		model = provider.Model(cfg.Model)
	}

	console := display.NewConsole(os.Stdout)
	r := runner.New(client, cfg, model, tools.Registry(cfg), console)
	log := conversation.New()

	// Ctrl-C cancels the in-flight turn's context and ends the session.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		fmt.Println("\nExiting...")
		cancel()
	}()

	// stdin reader goroutine so the prompt loop can also watch ctx.
	scanner := bufio.NewScanner(os.Stdin)
	inputCh := make(chan string)
	go func() {
		for scanner.Scan() {
			inputCh <- scanner.Text()
		}
		close(inputCh)
	}()

	fmt.Println("Chat with Claude (Ctrl-C to quit)")
	for {
		fmt.Print("\u001b[94mYou\u001b[0m: ")
		var (
			user string
			ok   bool
		)
		select {
		case <-ctx.Done():
			return nil
		case user, ok = <-inputCh:
			if !ok {
				// EOF on stdin ends the session cleanly.
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("stdin: %w", err)
				}
				return nil
			}
		}

		// A failed turn is reported and the session continues; the log holds
		// no partial assistant message from it.
		if err := r.RunTurn(ctx, log, user); err != nil {
			if ctx.Err() != nil {
				console.Error(err)
				return nil
			}
			console.Error(err)
		}
	}
}
