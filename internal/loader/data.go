package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"finitefield.org/folio/internal/content"
	"finitefield.org/folio/internal/source"
)

var errInvalidJSON = errors.New("invalid JSON document")

// SectionError names the content document that failed a data load.
type SectionError struct {
	Section content.Section
	Err     error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("load %s data: %v", e.Section, e.Err)
}

func (e *SectionError) Unwrap() error { return e.Err }

// Data loads the content documents of every section as one bundle.
type Data struct {
	src      source.Source
	sections []content.Section
	logger   *zap.Logger
}

// NewData builds a loader for the fixed section list.
func NewData(src source.Source, logger *zap.Logger) *Data {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Data{src: src, sections: content.Sections, logger: logger}
}

// Load fetches all documents concurrently. It succeeds only when every document is
// fetched and decoded; the first failure cancels the remaining fetches and no bundle
// is returned.
func (d *Data) Load(ctx context.Context) (*content.Bundle, error) {
	raws := make([][]byte, len(d.sections))

	g, gctx := errgroup.WithContext(ctx)
	for i, section := range d.sections {
		g.Go(func() error {
			b, err := d.src.Fetch(gctx, source.DataPath(string(section)))
			if err != nil {
				return &SectionError{Section: section, Err: err}
			}
			if !json.Valid(b) {
				return &SectionError{Section: section, Err: errInvalidJSON}
			}
			raws[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		d.logger.Error("content load failed", zap.Error(err))
		return nil, err
	}

	bundle := &content.Bundle{}
	for i, section := range d.sections {
		if err := bundle.Decode(section, raws[i]); err != nil {
			err = &SectionError{Section: section, Err: err}
			d.logger.Error("content load failed", zap.Error(err))
			return nil, err
		}
	}
	d.logger.Debug("content loaded", zap.Int("documents", len(d.sections)))
	return bundle, nil
}
