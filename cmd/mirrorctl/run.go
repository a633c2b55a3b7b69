package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/docopt/docopt-go"
	"go.uber.org/zap"

	"github.com/murkotick/catalog-mirror/internal/app/catalog"
	"github.com/murkotick/catalog-mirror/internal/app/catalog/queries/list_products"
	"github.com/murkotick/catalog-mirror/internal/config"
	"github.com/murkotick/catalog-mirror/internal/pkg/logger"
	"github.com/murkotick/catalog-mirror/internal/transport/http/gateway"
)

var errUsage = errors.New("invalid arguments")

// run executes one parsed command line and writes its result to out.
func run(ctx context.Context, opts docopt.Opts, out io.Writer) error {
	cfgPath := os.Getenv("CATALOG_CONFIG")
	if v, ok := optString(opts, "--config"); ok {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if v, ok := optString(opts, "--api_url"); ok {
		cfg.Gateway.BaseURL = v
	}
	if v, ok := optString(opts, "--locale"); ok {
		cfg.Mirror.Locale = v
	}
	locale, err := cfg.LocaleTag()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer log.Sync()

	gw := gateway.New(cfg.Gateway.BaseURL,
		gateway.WithTimeout(cfg.Gateway.Timeout),
		gateway.WithRateLimit(cfg.Gateway.RateLimit, cfg.Gateway.Burst),
		gateway.WithLogger(log.Named("gateway")),
	)
	c := catalog.New(gw,
		catalog.WithLocale(locale),
		catalog.WithLogger(log.Named("mirror")),
	)
	defer c.Close()

	if serve, _ := opts.Bool("serve"); serve {
		return runServe(ctx, cfg, c, log)
	}

	a := &app{c: c, out: out, log: log}
	if _, err := c.LoadAll(ctx); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	if comment, _ := opts.Bool("comment"); comment {
		id, err := optID(opts, "<id>")
		if err != nil {
			return err
		}
		if add, _ := opts.Bool("add"); add {
			text, _ := optString(opts, "<text>")
			return a.commentAdd(ctx, id, text)
		}
		commentID, _ := optString(opts, "<comment_id>")
		return a.commentDelete(ctx, id, commentID)
	}

	switch {
	case isSet(opts, "list"):
		sortBy, _ := optString(opts, "--sort")
		by, err := list_products.ParseCriterion(sortBy)
		if err != nil {
			return err
		}
		return a.list(by)
	case isSet(opts, "show"):
		id, err := optID(opts, "<id>")
		if err != nil {
			return err
		}
		return a.show(id)
	case isSet(opts, "comments"):
		id, err := optID(opts, "<id>")
		if err != nil {
			return err
		}
		return a.comments(id)
	case isSet(opts, "create"):
		return a.create(ctx, opts)
	case isSet(opts, "update"):
		id, err := optID(opts, "<id>")
		if err != nil {
			return err
		}
		return a.update(ctx, id, opts)
	case isSet(opts, "copy"):
		id, err := optID(opts, "<id>")
		if err != nil {
			return err
		}
		return a.copyProduct(ctx, id, opts)
	case isSet(opts, "delete"):
		raw, _ := opts["<ids>"].([]string)
		ids := make([]int64, 0, len(raw))
		for _, s := range raw {
			id, err := parseID(s)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return a.deleteAll(ctx, ids)
	}

	log.Debug("no command matched", zap.Any("opts", opts))
	return errUsage
}

func isSet(opts docopt.Opts, key string) bool {
	v, _ := opts.Bool(key)
	return v
}

func optString(opts docopt.Opts, key string) (string, bool) {
	v, ok := opts[key].(string)
	return v, ok
}

func optID(opts docopt.Opts, key string) (int64, error) {
	s, ok := optString(opts, key)
	if !ok {
		return 0, fmt.Errorf("%w: %s is required", errUsage, key)
	}
	return parseID(s)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: product id %q", errUsage, s)
	}
	return id, nil
}

func optInt(opts docopt.Opts, key string) (int, bool, error) {
	s, ok := optString(opts, key)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s %q", errUsage, key, s)
	}
	return n, true, nil
}

func optFloat(opts docopt.Opts, key string) (float64, bool, error) {
	s, ok := optString(opts, key)
	if !ok {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s %q", errUsage, key, s)
	}
	return f, true, nil
}
