package loader

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"finitefield.org/folio/internal/content"
	"finitefield.org/folio/internal/dom"
	"finitefield.org/folio/internal/i18n"
	"finitefield.org/folio/internal/source"
)

// Slot binds a placeholder element id in the page shell to a fragment name.
type Slot struct {
	Placeholder string
	Component   string
}

// DefaultSlots is the fixed fragment layout of the page shell.
var DefaultSlots = []Slot{
	{Placeholder: "navigation-container", Component: "navigation"},
	{Placeholder: "hero-container", Component: "hero"},
	{Placeholder: "about-container", Component: "about"},
	{Placeholder: "skills-container", Component: "skills"},
	{Placeholder: "experience-container", Component: "experience"},
	{Placeholder: "education-container", Component: "education"},
	{Placeholder: "languages-container", Component: "languages"},
	{Placeholder: "contact-container", Component: "contact"},
	{Placeholder: "footer-container", Component: "footer"},
}

// Outcome is the result of loading one slot.
type Outcome struct {
	Slot Slot
	// Skipped is set when the placeholder is not in the shell.
	Skipped bool
	Err     error
}

// Report lists the outcome of every slot in slot order.
type Report struct {
	Outcomes []Outcome
}

// Failed returns the slots whose fragment could not be fetched.
func (r Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Loaded counts the slots that received their fragment.
func (r Report) Loaded() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Skipped && o.Err == nil {
			n++
		}
	}
	return n
}

// Components injects HTML fragments into their placeholders.
type Components struct {
	src    source.Source
	slots  []Slot
	policy *bluemonday.Policy
	labels *i18n.Bundle
	logger *zap.Logger
}

// ComponentsOption customises a Components loader.
type ComponentsOption func(*Components)

// WithSlots replaces the default slot layout.
func WithSlots(slots []Slot) ComponentsOption {
	return func(c *Components) { c.slots = append([]Slot(nil), slots...) }
}

// WithSanitizer runs every fragment through policy before injection.
func WithSanitizer(policy *bluemonday.Policy) ComponentsOption {
	return func(c *Components) { c.policy = policy }
}

// WithLabels localizes the inline error shown for a failed fragment.
func WithLabels(labels *i18n.Bundle) ComponentsOption {
	return func(c *Components) { c.labels = labels }
}

// WithComponentsLogger sets the logger used for fragment failures.
func WithComponentsLogger(logger *zap.Logger) ComponentsOption {
	return func(c *Components) { c.logger = logger }
}

// NewComponents builds a loader reading fragments from src.
func NewComponents(src source.Source, opts ...ComponentsOption) *Components {
	c := &Components{src: src, slots: DefaultSlots, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

type fetched struct {
	body []byte
	err  error
}

// Load fetches every fragment concurrently and waits for all of them to settle, then
// injects them into doc in slot order. A failed fragment is replaced by an inline
// error message; it never prevents the other slots from loading. Slots whose
// placeholder is missing are skipped without fetching.
func (c *Components) Load(ctx context.Context, doc *dom.Document, lang content.Lang) Report {
	results := make([]fetched, len(c.slots))
	present := make([]bool, len(c.slots))

	var wg sync.WaitGroup
	for i, slot := range c.slots {
		if _, ok := doc.ByID(slot.Placeholder); !ok {
			continue
		}
		present[i] = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := c.src.Fetch(ctx, source.ComponentPath(slot.Component))
			results[i] = fetched{body: b, err: err}
		}()
	}
	wg.Wait()

	report := Report{Outcomes: make([]Outcome, 0, len(c.slots))}
	for i, slot := range c.slots {
		if !present[i] {
			report.Outcomes = append(report.Outcomes, Outcome{Slot: slot, Skipped: true})
			continue
		}
		res := results[i]
		if res.err != nil {
			c.logger.Warn("fragment load failed",
				zap.String("component", slot.Component),
				zap.String("placeholder", slot.Placeholder),
				zap.Error(res.err),
			)
			doc.Replace(slot.Placeholder, c.errorNode(slot.Component, lang))
			report.Outcomes = append(report.Outcomes, Outcome{Slot: slot, Err: res.err})
			continue
		}
		body := res.body
		if c.policy != nil {
			body = c.policy.SanitizeBytes(body)
		}
		doc.SetInnerHTML(slot.Placeholder, string(body))
		report.Outcomes = append(report.Outcomes, Outcome{Slot: slot})
	}
	return report
}

func (c *Components) errorNode(component string, lang content.Lang) dom.Node {
	msg := "Error loading " + component
	if tmpl, ok := c.labels.Lookup(string(lang), i18n.KeyErrorLoading); ok && strings.Count(tmpl, "%s") == 1 {
		msg = fmt.Sprintf(tmpl, component)
	}
	return dom.El("p", "p-4 text-center text-red-500", dom.Text(msg)).
		Attr("role", "alert").
		Attr("data-component", component)
}
