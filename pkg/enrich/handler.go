package enrich

import (
	"context"
	"log/slog"
	"slices"

	sserr "github.com/StricklySoft/stricklysoft-enrichers/pkg/errors"
	"github.com/StricklySoft/stricklysoft-enrichers/pkg/exception"
)

// Handler is a [slog.Handler] that adds a friendly exception attribute to
// records carrying an error. It is immutable and safe for concurrent use.
//
// Only attributes of the current group are inspected. Attributes bound
// with [Handler.WithAttrs] count as part of every record; after
// [Handler.WithGroup] the friendly attribute is added inside the group,
// like any other record attribute, so only attributes bound within that
// group suppress it.
type Handler struct {
	next      slog.Handler
	cfg       Config
	flattener *exception.Flattener

	boundErr    error
	hasProperty bool
}

// NewHandler wraps next with enrichment configured by cfg.
func NewHandler(next slog.Handler, cfg Config) (*Handler, error) {
	if next == nil {
		return nil, sserr.InvalidArgument("next")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Handler{
		next:      next,
		cfg:       cfg,
		flattener: exception.NewFlattener(exception.Options{LineSeparator: cfg.LineSeparator}),
	}, nil
}

// WithFriendlyException wraps next with the default configuration. It
// panics if next is nil.
func WithFriendlyException(next slog.Handler) slog.Handler {
	h, err := NewHandler(next, DefaultConfig())
	if err != nil {
		panic("enrich: " + err.Error())
	}
	return h
}

// NewLogger returns a logger whose records are enriched according to cfg
// before reaching next.
func NewLogger(next slog.Handler, cfg Config) (*slog.Logger, error) {
	h, err := NewHandler(next, cfg)
	if err != nil {
		return nil, err
	}
	return slog.New(h), nil
}

// Enabled implements [slog.Handler].
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements [slog.Handler]. Records without an attached error,
// or already carrying the property, are passed through unchanged.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	present, err := h.inspect(r)
	if err == nil || present {
		return h.next.Handle(ctx, r)
	}

	ex := exception.FromErrorDepth(err, h.cfg.MaxDepth)
	if h.cfg.PrepareForSerialization {
		if perr := h.flattener.PrepareForAsyncSerialization(ex); perr != nil {
			return perr
		}
	}
	message := h.flattener.ToFriendlyMessage(ex)

	r = r.Clone()
	r.AddAttrs(slog.String(h.cfg.PropertyName, message))
	if h.cfg.PrepareForSerialization && h.cfg.IncludeCachedTrace {
		if trace, ok := ex.CachedStackTrace(); ok && trace != "" {
			r.AddAttrs(slog.String(exception.AsyncStackTraceKey, trace))
		}
	}
	if h.cfg.RecordSpanEvents {
		h.recordSpanEvent(ctx, ex, message)
	}
	return h.next.Handle(ctx, r)
}

// WithAttrs implements [slog.Handler].
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	for _, a := range attrs {
		if a.Key == h.cfg.PropertyName {
			h2.hasProperty = true
		}
		if h2.boundErr == nil {
			h2.boundErr = h.errorOf(a)
		}
	}
	h2.next = h.next.WithAttrs(attrs)
	return h2
}

// WithGroup implements [slog.Handler].
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	// A new group is a new namespace for the friendly attribute.
	h2.hasProperty = false
	h2.next = h.next.WithGroup(name)
	return h2
}

func (h *Handler) clone() *Handler {
	h2 := *h
	return &h2
}

// inspect reports whether the property is already present and returns
// the error attached to r. Record attributes take precedence over bound
// ones.
func (h *Handler) inspect(r slog.Record) (bool, error) {
	var err error
	present := h.hasProperty
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == h.cfg.PropertyName {
			present = true
		}
		if err == nil {
			err = h.errorOf(a)
		}
		return !present
	})
	if err == nil {
		err = h.boundErr
	}
	return present, err
}

// errorOf returns the non-nil error held by a, if a is eligible to carry
// the attached error.
func (h *Handler) errorOf(a slog.Attr) error {
	if len(h.cfg.ErrorKeys) > 0 && !slices.Contains(h.cfg.ErrorKeys, a.Key) {
		return nil
	}
	v := a.Value.Resolve()
	if v.Kind() != slog.KindAny {
		return nil
	}
	if err, ok := v.Any().(error); ok && err != nil {
		return err
	}
	return nil
}
