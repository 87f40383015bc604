package settings

import "context"

type runKey struct{}

// IntoContext attaches r to ctx.
func IntoContext(ctx context.Context, r *Run) context.Context {
	return context.WithValue(ctx, runKey{}, r)
}

// FromContext returns the settings attached to ctx.
func FromContext(ctx context.Context) (*Run, bool) {
	r, ok := ctx.Value(runKey{}).(*Run)
	return r, ok && r != nil
}

// FromContextOrDefaults returns the attached settings, or Defaults when ctx
// carries none.
func FromContextOrDefaults(ctx context.Context) *Run {
	if r, ok := FromContext(ctx); ok {
		return r
	}
	return Defaults()
}
