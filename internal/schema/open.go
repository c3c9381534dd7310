package schema

import (
	"context"

	"github.com/koustreak/schemagen/internal/database"
	"github.com/koustreak/schemagen/internal/database/mysql"
	"github.com/koustreak/schemagen/internal/database/postgres"
	"github.com/koustreak/schemagen/internal/errs"
)

// Open connects to the database described by cfg with the matching driver.
func Open(ctx context.Context, cfg *database.Config) (database.DB, error) {
	switch cfg.Driver {
	case database.DriverMySQL:
		d, err := mysql.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return d, nil
	case database.DriverPostgres:
		d, err := postgres.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, errs.Newf(errs.ErrKindInvalidInput, "unsupported driver %q", cfg.Driver)
	}
}

// ConfigOpener adapts Open to an Opener bound to cfg.
func ConfigOpener(cfg *database.Config) Opener {
	return func(ctx context.Context) (database.DB, error) {
		return Open(ctx, cfg)
	}
}
