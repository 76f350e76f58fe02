// Package portfolio drives the page pipeline: shell, fragments, content documents,
// localized render and reveal.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"finitefield.org/folio/internal/content"
	"finitefield.org/folio/internal/dom"
	"finitefield.org/folio/internal/i18n"
	"finitefield.org/folio/internal/loader"
	"finitefield.org/folio/internal/observability"
	"finitefield.org/folio/internal/render"
	"finitefield.org/folio/internal/source"
)

// ErrContentUnavailable is returned by Open when the content documents could not be
// loaded. The page is still returned, in its hidden state.
var ErrContentUnavailable = errors.New("portfolio: content unavailable")

// Options configures a Controller.
type Options struct {
	Source source.Source
	Labels *i18n.Bundle
	Logger *zap.Logger
	// SiteURL is the public origin used for canonical and alternate links.
	SiteURL string
	// Sanitize filters fragments through loader.FragmentPolicy before injection.
	Sanitize bool
	Slots    []loader.Slot
	// Meter receives page metrics; nil uses the global meter provider.
	Meter metric.Meter
}

// Controller builds pages. It holds no per-page state and is safe for concurrent use.
type Controller struct {
	src        source.Source
	components *loader.Components
	data       *loader.Data
	labels     *i18n.Bundle
	logger     *zap.Logger
	metrics    *observability.PageMetrics
	siteURL    string
}

// New wires the loaders around opts.Source.
func New(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	copts := []loader.ComponentsOption{
		loader.WithLabels(opts.Labels),
		loader.WithComponentsLogger(logger),
	}
	if opts.Sanitize {
		copts = append(copts, loader.WithSanitizer(loader.FragmentPolicy()))
	}
	if len(opts.Slots) > 0 {
		copts = append(copts, loader.WithSlots(opts.Slots))
	}
	return &Controller{
		src:        opts.Source,
		components: loader.NewComponents(opts.Source, copts...),
		data:       loader.NewData(opts.Source, logger),
		labels:     opts.Labels,
		logger:     logger,
		metrics:    observability.NewPageMetrics(opts.Meter, logger),
		siteURL:    opts.SiteURL,
	}
}

// Labels returns the interface label bundle.
func (c *Controller) Labels() *i18n.Bundle { return c.labels }

// Open builds the page for lang. Fragments are fully settled before the content
// documents are fetched. When the content load fails, Open returns the hidden page
// together with an error wrapping ErrContentUnavailable.
func (c *Controller) Open(ctx context.Context, lang content.Lang) (page *Page, err error) {
	renderID := uuid.NewString()
	lang = content.ParseLang(string(lang))
	logger := c.logger.With(zap.String("render_id", renderID), zap.String("lang", lang.String()))

	ctx, span := observability.StartSpan(ctx, "portfolio.Open",
		attribute.String("render_id", renderID),
		attribute.String("lang", lang.String()),
	)
	start := time.Now()
	defer func() {
		observability.EndSpan(span, err)
		c.metrics.RecordOpen(ctx, lang.String(), outcome(err), time.Since(start))
	}()

	shell, err := c.src.Fetch(ctx, source.ShellPath)
	if err != nil {
		return nil, fmt.Errorf("portfolio: fetch shell: %w", err)
	}
	doc, err := dom.ParseBytes(shell)
	if err != nil {
		return nil, fmt.Errorf("portfolio: %w", err)
	}

	page = &Page{
		RenderID: renderID,
		doc:      doc,
		rc:       render.NewContext(lang, c.labels),
		siteURL:  c.siteURL,
	}
	EnforceDarkTheme(doc)
	hide(doc)

	report := c.loadComponents(ctx, doc, lang)
	logger.Debug("fragments loaded",
		zap.Int("loaded", report.Loaded()),
		zap.Int("failed", len(report.Failed())),
	)
	page.Fragments = report
	if failed := report.Failed(); len(failed) > 0 {
		names := make([]string, 0, len(failed))
		for _, o := range failed {
			names = append(names, o.Slot.Component)
		}
		c.metrics.RecordFragmentErrors(ctx, names...)
	}

	bundle, err := c.loadData(ctx)
	if err != nil {
		logger.Error("page left hidden", zap.Error(err))
		wireInteractions(doc)
		page.syncToggles()
		return page, fmt.Errorf("%w: %w", ErrContentUnavailable, err)
	}

	page.bundle = bundle
	wireInteractions(doc)
	page.render()
	reveal(doc)
	page.ready = true
	logger.Info("page rendered")
	return page, nil
}

func (c *Controller) loadComponents(ctx context.Context, doc *dom.Document, lang content.Lang) loader.Report {
	ctx, span := observability.StartSpan(ctx, "portfolio.components")
	report := c.components.Load(ctx, doc, lang)
	span.SetAttributes(attribute.Int("failed", len(report.Failed())))
	observability.EndSpan(span, nil)
	return report
}

func (c *Controller) loadData(ctx context.Context) (b *content.Bundle, err error) {
	ctx, span := observability.StartSpan(ctx, "portfolio.data")
	defer func() { observability.EndSpan(span, err) }()
	return c.data.Load(ctx)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeRendered
	case errors.Is(err, ErrContentUnavailable):
		return observability.OutcomeUnavailable
	}
	return observability.OutcomeFailed
}
