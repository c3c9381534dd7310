// Package generator turns a schema.Map into API module scaffolding: one
// content-type descriptor and three source stubs per table.
package generator

import (
	"context"
	"fmt"

	"github.com/koustreak/schemagen/internal/errs"
	"github.com/koustreak/schemagen/internal/filestore"
	"github.com/koustreak/schemagen/internal/logger"
	"github.com/koustreak/schemagen/internal/mapping"
	"github.com/koustreak/schemagen/internal/naming"
	"github.com/koustreak/schemagen/internal/schema"
)

// DefaultExtension is the stub language used when none is configured.
const DefaultExtension = "js"

// SchemaSource produces the schema to generate from. *schema.Reader
// implements it.
type SchemaSource interface {
	ReadSchema(ctx context.Context) (*schema.Map, error)
}

// Options configures a Generator.
type Options struct {
	// TablePrefix is stripped from table names to form module names.
	TablePrefix string

	// Root is the API directory, relative to the store. Default naming.DefaultRoot.
	Root string

	// Extension selects the stub language: "js" or "ts". Default "js".
	Extension string

	// Types maps catalog types to attribute types.
	Types mapping.Mapper

	// Exclude lists columns that never become attributes. Nil means
	// DefaultExclude.
	Exclude Set

	// DraftAndPublish sets options.draftAndPublish on every content type.
	DraftAndPublish bool
}

// Summary reports what GenerateAll wrote.
type Summary struct {
	Tables int
	Files  []string
}

// Generator writes module artifacts to a filestore.Store, one file at a
// time. It holds no state between calls.
type Generator struct {
	store filestore.Store
	opts  Options
	log   *logger.Logger
}

// New validates opts and returns a Generator. A nil log discards output.
func New(store filestore.Store, opts Options, log *logger.Logger) (*Generator, error) {
	if store == nil {
		return nil, errs.New(errs.ErrKindInvalidInput, "generator needs a store")
	}
	if opts.Root == "" {
		opts.Root = naming.DefaultRoot
	}
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	if !SupportedExtension(opts.Extension) {
		return nil, errs.Newf(errs.ErrKindInvalidInput, "unsupported stub extension %q", opts.Extension)
	}
	if opts.Exclude == nil {
		opts.Exclude = DefaultExclude()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{store: store, opts: opts, log: log}, nil
}

// ModuleInfo returns the module location for table.
func (g *Generator) ModuleInfo(table string) naming.ModuleInfo {
	return naming.NewModuleInfo(table, g.opts.TablePrefix, g.opts.Root)
}

// EmitContentType writes the schema.json descriptor for table and returns
// its key.
func (g *Generator) EmitContentType(ctx context.Context, table string, cols []schema.Column) (string, error) {
	info := g.ModuleInfo(table)
	ct := BuildContentType(table, cols, BuildOptions{
		TablePrefix:     g.opts.TablePrefix,
		Root:            g.opts.Root,
		Types:           g.opts.Types,
		Exclude:         g.opts.Exclude,
		DraftAndPublish: g.opts.DraftAndPublish,
	})

	data, err := ct.Marshal()
	if err != nil {
		return "", fmt.Errorf("marshal content type for %s: %w", table, err)
	}

	key := ContentTypePath(info)
	if err := g.store.Put(ctx, key, data); err != nil {
		return "", fmt.Errorf("emit content type for %s: %w", table, err)
	}

	g.progress(table, "content-type", key)
	return key, nil
}

// EmitStub writes the kind stub for table and returns its key.
func (g *Generator) EmitStub(ctx context.Context, table string, kind StubKind) (string, error) {
	info := g.ModuleInfo(table)

	data, err := RenderStub(info, kind, g.opts.Extension)
	if err != nil {
		return "", err
	}

	key := StubPath(info, kind, g.opts.Extension)
	if err := g.store.Put(ctx, key, data); err != nil {
		return "", fmt.Errorf("emit %s for %s: %w", kind, table, err)
	}

	g.progress(table, kind.String(), key)
	return key, nil
}

// Emit writes the content type, then the controller, service and route
// stubs for table. It stops at the first failure; files already written
// stay in place.
func (g *Generator) Emit(ctx context.Context, table string, cols []schema.Column) ([]string, error) {
	files := make([]string, 0, 1+len(StubKinds))

	key, err := g.EmitContentType(ctx, table, cols)
	if err != nil {
		return files, err
	}
	files = append(files, key)

	for _, kind := range StubKinds {
		key, err := g.EmitStub(ctx, table, kind)
		if err != nil {
			return files, err
		}
		files = append(files, key)
	}
	return files, nil
}

// GenerateAll reads the schema once and emits every table in schema
// order. The first failure aborts the run with no rollback; the returned
// Summary lists what was written up to that point.
func (g *Generator) GenerateAll(ctx context.Context, src SchemaSource) (*Summary, error) {
	m, err := src.ReadSchema(ctx)
	if err != nil {
		return &Summary{}, err
	}

	g.log.With().
		Any("exclude", g.opts.Exclude.Sorted()).
		Str("extension", g.opts.Extension).
		Logger().
		Debug("emitting modules")

	if m.Len() == 0 {
		g.log.Warn("no tables matched; nothing to generate")
	}

	sum := &Summary{}
	err = m.Each(func(table string, cols []schema.Column) error {
		files, err := g.Emit(ctx, table, cols)
		sum.Files = append(sum.Files, files...)
		if err != nil {
			return err
		}
		sum.Tables++
		return nil
	})
	if err != nil {
		return sum, err
	}

	g.log.With().
		Int("tables", sum.Tables).
		Int("files", len(sum.Files)).
		Logger().
		Info("generation complete")
	return sum, nil
}

func (g *Generator) progress(table, kind, key string) {
	g.log.With().
		Str("table", table).
		Str("kind", kind).
		Str("path", g.store.Location(key)).
		Logger().
		Info("generated")
}
