// Command schemagen reads a database catalog and writes API module
// scaffolding for every table it finds.
//
// All settings come from the environment (and an optional .env file):
//
//	SOURCE_DB_DRIVER=mysql SOURCE_DB_NAME=shop SOURCE_DB_TABLE_PREFIX=tbl_ schemagen
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/koustreak/schemagen/internal/config"
	"github.com/koustreak/schemagen/internal/errs"
	"github.com/koustreak/schemagen/internal/filestore"
	"github.com/koustreak/schemagen/internal/filestore/local"
	"github.com/koustreak/schemagen/internal/filestore/minio"
	"github.com/koustreak/schemagen/internal/generator"
	"github.com/koustreak/schemagen/internal/logger"
	"github.com/koustreak/schemagen/internal/mapping"
	"github.com/koustreak/schemagen/internal/schema"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stderr := logger.New(&logger.Config{Level: "error", Format: "console", Output: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		stderr.Errorf("invalid configuration: %v", err)
		stop()
		os.Exit(1)
	}

	ctx = logger.New(cfg.Log).WithContext(ctx)
	if err := run(ctx, cfg); err != nil {
		stderr.ErrorWith("generation failed", err, map[string]any{"kind": errs.KindOf(err).String()})
		stop()
		os.Exit(1)
	}
}

// run wires the reader, store and generator from cfg and generates every
// table once. It logs through the logger attached to ctx.
func run(ctx context.Context, cfg *config.Config) error {
	log := logger.FromContext(ctx)

	store, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.With().Err(err).Logger().Error("close store")
		}
	}()

	reader := schema.NewReader(schema.ConfigOpener(cfg.Database), schema.Options{
		Driver:      cfg.Database.Driver,
		Database:    cfg.Database.Database,
		Schema:      cfg.Database.Schema,
		TablePrefix: cfg.TablePrefix,
	}, log)

	gen, err := generator.New(store, generator.Options{
		TablePrefix:     cfg.TablePrefix,
		Root:            cfg.Output.Dir,
		Extension:       cfg.Output.Extension,
		Types:           cfg.Mapping.Mapper(mapping.ForDialect(cfg.Database.Driver)),
		Exclude:         generator.DefaultExclude().Union(cfg.Mapping.Exclude...),
		DraftAndPublish: cfg.Output.DraftAndPublish,
	}, log)
	if err != nil {
		return err
	}

	log.InfoWith("starting generation", map[string]any{
		"driver":   string(cfg.Database.Driver),
		"database": cfg.Database.Database,
		"prefix":   cfg.TablePrefix,
		"target":   string(cfg.Store.Provider),
	})

	log.Infof("writing modules under %s", store.Location(cfg.Output.Dir))

	_, err = gen.GenerateAll(ctx, reader)
	return err
}

// openStore returns the artifact store selected by cfg.Provider.
func openStore(ctx context.Context, cfg *filestore.Config, log *logger.Logger) (filestore.Store, error) {
	switch cfg.Provider {
	case filestore.ProviderMinIO:
		s, err := minio.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case filestore.ProviderLocal, "":
		s, err := local.New(cfg.Root)
		if err != nil {
			return nil, err
		}
		if err := s.Ping(ctx); err != nil {
			return nil, err
		}
		log.Debugf("local output root %s", s.Root())
		return s, nil
	default:
		return nil, errs.Newf(errs.ErrKindInvalidInput, "unsupported output target %q", cfg.Provider)
	}
}
