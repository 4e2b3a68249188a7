package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	formvalidator "github.com/goliatone/go-formvalidator"
	"github.com/goliatone/go-formvalidator/components/postal"
	"github.com/goliatone/go-formvalidator/pkg/messages"
	"github.com/goliatone/go-formvalidator/pkg/model"
	"github.com/goliatone/go-formvalidator/pkg/orchestrator"
)

func main() {
	ok, err := run(context.Background(), os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if !ok {
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) (bool, error) {
	cfg, err := loadConfig(args)
	if err != nil {
		return false, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.level()}))

	form, err := resolveForm(ctx, cfg)
	if err != nil {
		return false, err
	}

	sess := newSession(newSurveyDriver(os.Stdout))
	options := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithLocale(cfg.Locale),
		orchestrator.WithEffectSink(sess),
	}
	if cfg.EnvConfig {
		options = append(options, orchestrator.WithConfig(cfg.Validation))
	}
	if cfg.Messages != "" {
		table, err := messages.LoadFS(os.DirFS(filepath.Dir(cfg.Messages)), filepath.Base(cfg.Messages))
		if err != nil {
			return false, err
		}
		options = append(options, orchestrator.WithMessageTable(table))
	}

	lookup, closeLookup, err := postalLookup(cfg, logger)
	if err != nil {
		return false, err
	}
	defer closeLookup()
	if lookup != nil {
		options = append(options, orchestrator.WithPostalLookup(lookup))
	}

	orch, err := formvalidator.New(form, options...)
	if err != nil {
		return false, err
	}
	sess.orch = orch
	return sess.Run(ctx, nil)
}

func resolveForm(ctx context.Context, cfg cliConfig) (model.Form, error) {
	if cfg.OpenAPI != "" {
		data, err := os.ReadFile(cfg.OpenAPI)
		if err != nil {
			return model.Form{}, fmt.Errorf("formvalidator-cli: read openapi document: %w", err)
		}
		return formvalidator.FormFromOpenAPI(ctx, data, cfg.Operation)
	}

	set, err := formvalidator.LoadForms(os.DirFS(cfg.Forms))
	if err != nil {
		return model.Form{}, err
	}
	id := cfg.Form
	if id == "" {
		ids := set.IDs()
		if len(ids) != 1 {
			return model.Form{}, fmt.Errorf("formvalidator-cli: -form is required, available: %v", ids)
		}
		id = ids[0]
	}
	form, ok := set.Form(id)
	if !ok {
		return model.Form{}, fmt.Errorf("formvalidator-cli: form %q not found in %s", id, cfg.Forms)
	}
	return form, nil
}

func postalLookup(cfg cliConfig, logger *slog.Logger) (orchestrator.PostalLookup, func(), error) {
	noop := func() {}
	if cfg.PostalURL == "" {
		return nil, noop, nil
	}

	fns := []postal.OptionFn{postal.WithBaseURL(cfg.PostalURL), postal.WithLogger(logger)}
	closer := noop
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, noop, fmt.Errorf("formvalidator-cli: parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		closer = func() { _ = client.Close() }
		fns = append(fns, postal.WithCache(postal.NewRedisCache(client, "")))
	}
	return postal.New(fns...).Lookup(postal.WithSynchronous()), closer, nil
}
