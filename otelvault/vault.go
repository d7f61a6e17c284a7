package otelvault

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/skosovsky/promptvault"
)

const instrumentationName = "github.com/skosovsky/promptvault/otelvault"

// Span attribute keys.
const (
	AttrName            = attribute.Key("promptvault.name")
	AttrVersion         = attribute.Key("promptvault.version")
	AttrResolvedVersion = attribute.Key("promptvault.resolved_version")
	AttrTag             = attribute.Key("promptvault.tag")
	AttrEntries         = attribute.Key("promptvault.entries")
)

// Ensures Vault implements promptvault.Vault.
var _ promptvault.Vault = (*Vault)(nil)

// Vault traces calls to an inner vault.
type Vault struct {
	inner  promptvault.Vault
	tracer trace.Tracer
}

// Option configures a Vault.
type Option func(*config)

type config struct {
	provider trace.TracerProvider
}

// WithTracerProvider sets the provider spans are created with. Default is otel.GetTracerProvider().
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) { c.provider = tp }
}

// New wraps inner. Panics if inner is nil.
func New(inner promptvault.Vault, opts ...Option) *Vault {
	if inner == nil {
		panic("otelvault: inner vault must not be nil")
	}
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.provider == nil {
		cfg.provider = otel.GetTracerProvider()
	}
	return &Vault{inner: inner, tracer: cfg.provider.Tracer(instrumentationName)}
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Save traces inner.Save. The span's version attribute is the version actually stored,
// which differs from the requested one after a collision bump.
func (v *Vault) Save(ctx context.Context, tpl promptvault.Variant, opts ...promptvault.SaveOption) (err error) {
	ctx, span := v.tracer.Start(ctx, "promptvault.Save", trace.WithSpanKind(trace.SpanKindInternal))
	defer func() { finish(span, err) }()
	if name, nameErr := promptvault.TargetName(tpl, opts...); nameErr == nil {
		span.SetAttributes(AttrName.String(name), AttrTag.String(promptvault.TagOf(tpl)), AttrVersion.String(tpl.Base().Version))
	}
	if err = v.inner.Save(ctx, tpl, opts...); err != nil {
		return err
	}
	span.SetAttributes(AttrResolvedVersion.String(tpl.Base().Version))
	return nil
}

// Load traces inner.Load.
func (v *Vault) Load(ctx context.Context, name, version string) (_ promptvault.Variant, err error) {
	ctx, span := v.tracer.Start(ctx, "promptvault.Load",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(AttrName.String(name), AttrVersion.String(version)))
	defer func() { finish(span, err) }()
	tpl, err := v.inner.Load(ctx, name, version)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(AttrResolvedVersion.String(tpl.Base().Version), AttrTag.String(promptvault.TagOf(tpl)))
	return tpl, nil
}

// List traces inner.List.
func (v *Vault) List(ctx context.Context) (_ []promptvault.Entry, err error) {
	ctx, span := v.tracer.Start(ctx, "promptvault.List", trace.WithSpanKind(trace.SpanKindInternal))
	defer func() { finish(span, err) }()
	entries, err := v.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(AttrEntries.Int(len(entries)))
	return entries, nil
}
