package trace

import "context"

// binding is what a context carries: the tracer of the command and the
// span new spans nest under.
type binding struct {
	tracer Tracer
	span   uint64
}

type bindingKey struct{}

func bound(ctx context.Context) binding {
	if ctx != nil {
		if b, ok := ctx.Value(bindingKey{}).(binding); ok {
			return b
		}
	}
	return binding{tracer: Nop}
}

// WithTracer attaches t to ctx as a root with no open span.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, bindingKey{}, binding{tracer: t})
}

// FromContext returns the tracer of ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return bound(ctx).tracer
}

// CurrentSpan returns the id of the span ctx is inside of, 0 at the root.
func CurrentSpan(ctx context.Context) uint64 {
	return bound(ctx).span
}

// Start opens a span under the span of ctx and returns a context that
// nests further spans under it. Spans the tracer does not record leave ctx
// unchanged.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	b := bound(ctx)
	span := Begin(b.tracer, scope, name, b.span)
	if span.id == 0 {
		return ctx, span
	}
	return context.WithValue(ctx, bindingKey{}, binding{tracer: b.tracer, span: span.id}), span
}
