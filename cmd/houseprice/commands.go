package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/goliatone/go-houseprice/internal/server"
	"github.com/goliatone/go-houseprice/pkg/model"
	"github.com/goliatone/go-houseprice/pkg/openapi"
	"github.com/goliatone/go-houseprice/pkg/orchestrator"
	"github.com/goliatone/go-houseprice/pkg/renderers/tui"
	"github.com/goliatone/go-houseprice/pkg/renderers/vanilla"
	"github.com/goliatone/go-houseprice/pkg/state"
	"github.com/goliatone/go-houseprice/pkg/submit"
)

// =============================================================================
// SERVE COMMAND
// =============================================================================

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the widget over HTTP, one form per browser session",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "Listen address",
				EnvVars: []string{"HOUSEPRICE_ADDR"},
			},
			&cli.IntFlag{
				Name:  "sessions",
				Usage: "Maximum number of live sessions",
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	env, err := loadEnvironment(c)
	if err != nil {
		return err
	}
	defer env.close()

	if c.IsSet("addr") {
		env.cfg.Server.Addr = c.String("addr")
	}
	if c.IsSet("sessions") {
		env.cfg.Server.Sessions = c.Int("sessions")
	}

	registry, err := orchestrator.DefaultRegistry(env.vanillaOptions(server.AssetsPrefix)...)
	if err != nil {
		return err
	}

	factory := func() *orchestrator.Orchestrator {
		return orchestrator.New(
			orchestrator.WithClient(env.client),
			orchestrator.WithContract(env.contract),
			orchestrator.WithRegistry(registry),
			orchestrator.WithLogger(env.logger),
		)
	}

	srv, err := server.New(server.Config{
		Addr:     env.cfg.Server.Addr,
		Sessions: env.cfg.Server.Sessions,
	}, factory, server.WithLogger(env.logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	env.logger.Info("prediction endpoint",
		zap.String("url", env.client.PredictURL()),
		zap.String("addr", srv.Addr()),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

// =============================================================================
// PROMPT COMMAND
// =============================================================================

func promptCommand() *cli.Command {
	return &cli.Command{
		Name:   "prompt",
		Usage:  "Fill the form interactively in the terminal",
		Action: runPrompt,
	}
}

func runPrompt(c *cli.Context) error {
	if err := tui.CheckTerminal(os.Stdin); err != nil {
		return err
	}

	env, err := loadEnvironment(c)
	if err != nil {
		return err
	}
	defer env.close()

	holder := state.New()
	session := tui.NewSession(holder, env.contract.Fields,
		tui.WithLogger(env.logger),
		tui.WithTheme(tui.Theme{NoticePrefix: "! ", ResultPrefix: "=> "}),
	)
	widget := orchestrator.New(
		orchestrator.WithHolder(holder),
		orchestrator.WithClient(env.client),
		orchestrator.WithContract(env.contract),
		orchestrator.WithLogger(env.logger),
		orchestrator.WithNotifier(session),
	)

	err = session.Run(c.Context, tui.SubmitterFunc(widget.Submit))
	if errors.Is(err, tui.ErrAborted) {
		return nil
	}
	return err
}

// =============================================================================
// RENDER COMMAND
// =============================================================================

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render the widget once, optionally after a prediction",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "renderer",
				Aliases: []string{"r"},
				Value:   vanilla.Name,
				Usage:   "Renderer to use (vanilla, tui)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file (stdout if empty)",
			},
			&cli.StringFlag{Name: "size", Usage: "House size in square feet"},
			&cli.StringFlag{Name: "bedrooms", Usage: "Number of bedrooms"},
			&cli.StringFlag{Name: "age", Usage: "House age in years"},
			&cli.BoolFlag{
				Name:  "predict",
				Usage: "Submit the values before rendering",
			},
		},
		Action: runRender,
	}
}

func runRender(c *cli.Context) error {
	env, err := loadEnvironment(c)
	if err != nil {
		return err
	}
	defer env.close()

	registry, err := orchestrator.DefaultRegistry(env.vanillaOptions("")...)
	if err != nil {
		return err
	}

	widget := orchestrator.New(
		orchestrator.WithClient(env.client),
		orchestrator.WithContract(env.contract),
		orchestrator.WithRegistry(registry),
		orchestrator.WithLogger(env.logger),
	)
	for _, field := range model.Fields() {
		if err := widget.SetField(field.String(), c.String(field.String())); err != nil {
			return err
		}
	}

	if c.Bool("predict") {
		if outcome := widget.Submit(c.Context); outcome.Phase == submit.PhaseFailed {
			fmt.Fprintf(os.Stderr, "prediction unavailable: %v\n", outcome.Err)
		}
	}

	out, err := widget.Render(c.Context, orchestrator.Request{Renderer: c.String("renderer")})
	if err != nil {
		return err
	}

	if path := c.String("output"); path != "" {
		if err := os.WriteFile(path, out.Body, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("Widget written to %s\n", path)
		return nil
	}
	_, err = os.Stdout.Write(out.Body)
	return err
}

// =============================================================================
// CONTRACT COMMAND
// =============================================================================

func contractCommand() *cli.Command {
	return &cli.Command{
		Name:  "contract",
		Usage: "Print the bundled OpenAPI contract, a starting point for endpoint.contract",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file (stdout if empty)",
			},
		},
		Action: func(c *cli.Context) error {
			return writeContract(os.Stdout, c.String("output"))
		},
	}
}

// writeContract copies the embedded contract to path, or to w when path is
// empty.
func writeContract(w io.Writer, path string) error {
	doc := openapi.EmbeddedDocument()
	if path == "" {
		_, err := w.Write(doc)
		return err
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("write contract: %w", err)
	}
	fmt.Fprintf(w, "Contract written to %s\n", path)
	return nil
}

// =============================================================================
// INFO COMMAND
// =============================================================================

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:   "info",
		Usage:  "Print metadata about the model behind the prediction service",
		Action: runInfo,
	}
}

func runInfo(c *cli.Context) error {
	env, err := loadEnvironment(c)
	if err != nil {
		return err
	}
	defer env.close()

	info, err := env.client.ModelInfo(c.Context)
	if err != nil {
		return err
	}

	fmt.Printf("Endpoint:     %s\n", env.client.PredictURL())
	fmt.Printf("Status:       %s\n", info.Status)
	fmt.Printf("Trained at:   %s\n", info.Metadata.TrainedAt)
	if info.Metadata.TrainingSamples != nil {
		fmt.Printf("Samples:      %d\n", *info.Metadata.TrainingSamples)
	}
	if info.Metadata.MarketTrend != nil {
		fmt.Printf("Market trend: %s\n", formatTrend(*info.Metadata.MarketTrend))
	}
	if info.Metadata.DataSource != "" {
		fmt.Printf("Data source:  %s\n", info.Metadata.DataSource)
	}
	return nil
}

// formatTrend renders a fractional trend as a signed percentage.
func formatTrend(trend float64) string {
	pct := decimal.NewFromFloat(trend).Mul(decimal.NewFromInt(100))
	sign := ""
	if pct.IsPositive() {
		sign = "+"
	}
	return sign + pct.StringFixed(2) + "%"
}
