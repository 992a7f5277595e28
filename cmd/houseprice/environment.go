package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/goliatone/go-houseprice/internal/config"
	"github.com/goliatone/go-houseprice/internal/logging"
	"github.com/goliatone/go-houseprice/pkg/openapi"
	"github.com/goliatone/go-houseprice/pkg/predict"
	"github.com/goliatone/go-houseprice/pkg/renderers/vanilla"
)

// environment is the state shared by every command.
type environment struct {
	cfg      config.Config
	logger   *zap.Logger
	client   *predict.HTTPClient
	contract openapi.Contract
}

// loadEnvironment resolves configuration (defaults, file, environment, flags),
// builds the logger and the prediction client.
func loadEnvironment(c *cli.Context) (*environment, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if c.IsSet("base-url") {
		cfg.Endpoint.BaseURL = c.String("base-url")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-file") {
		cfg.Log.File = c.String("log-file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return nil, err
	}

	contract, err := loadContract(c.Context, cfg.Endpoint.Contract)
	if err != nil {
		logger.Warn("endpoint contract unavailable, using built-in fields", zap.Error(err))
		contract = openapi.Fallback()
	}

	return &environment{
		cfg:      cfg,
		logger:   logger,
		client:   clientForContract(predict.New(cfg.PredictOptions()...), contract),
		contract: contract,
	}, nil
}

// clientForContract routes predictions to the contract's operation path unless
// endpoint.predict_path pinned one.
func clientForContract(client *predict.HTTPClient, contract openapi.Contract) *predict.HTTPClient {
	if client.PredictPathSet() || contract.Path == "" {
		return client
	}
	return client.Derive(predict.WithPredictPath(contract.Path))
}

func loadContract(ctx context.Context, path string) (openapi.Contract, error) {
	if path == "" {
		return openapi.Default(ctx)
	}
	return openapi.LoadFile(ctx, path, openapi.DefaultOperationID)
}

// vanillaOptions configures the HTML renderer from the theme section. Asset
// URLs are resolved against assetBase.
func (env *environment) vanillaOptions(assetBase string) []vanilla.Option {
	opts := []vanilla.Option{
		vanilla.WithTheme(env.cfg.RendererTheme(assetBase)),
		vanilla.WithTemplatesDir(env.cfg.Theme.TemplatesDir),
	}
	if assetBase != "" {
		opts = append(opts, vanilla.WithStylesheet(assetBase+vanilla.StylesheetName))
	}
	return opts
}

func (env *environment) close() {
	_ = env.logger.Sync()
}
