package ingest

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"vidshelf/internal/model"
)

// VideoCatalog is the slice of the catalog store the processor needs.
// repository.VideoRepository satisfies it.
type VideoCatalog interface {
	FindByTitle(ctx context.Context, title string) (*model.Video, error)
	CreateIfTitleAbsent(ctx context.Context, video *model.Video) (bool, error)
}

// Processor turns detected files into catalog records, one at a time.
// Keeping it single-threaded means the dedup logic needs no locking and can
// be tested without a filesystem. Store failures are logged and skipped; the
// loop itself never stops on one.
type Processor struct {
	catalog VideoCatalog
	logger  zerolog.Logger
}

// NewProcessor builds a processor over the given catalog.
func NewProcessor(catalog VideoCatalog, logger zerolog.Logger) *Processor {
	return &Processor{
		catalog: catalog,
		logger:  logger.With().Str("component", "ingest").Logger(),
	}
}

// Run consumes file paths until the channel closes or the context is
// cancelled.
func (p *Processor) Run(ctx context.Context, files <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-files:
			if !ok {
				return
			}
			p.process(ctx, path)
		}
	}
}

func (p *Processor) process(ctx context.Context, path string) {
	name := filepath.Base(path)

	existing, err := p.catalog.FindByTitle(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		p.logger.Error().Err(err).Str("file", name).Msg("lookup failed, skipping file")
		return
	}
	if existing != nil {
		p.logger.Debug().Str("file", name).Msg("already cataloged")
		return
	}

	now := time.Now()
	video := &model.Video{
		Title:    name,
		URL:      path,
		Category: model.CategoryUnsorted,
		Date:     &now,
	}

	created, err := p.catalog.CreateIfTitleAbsent(ctx, video)
	if err != nil {
		p.logger.Error().Err(err).Str("file", name).Msg("create failed, skipping file")
		return
	}
	if !created {
		// Lost the race against a concurrent create for the same title.
		p.logger.Debug().Str("file", name).Msg("already cataloged")
		return
	}

	p.logger.Info().Str("file", name).Str("path", path).Msg("file cataloged")
}
