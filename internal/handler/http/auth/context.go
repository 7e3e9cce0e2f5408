// Package auth implements JWT bearer authentication: token issuance from
// account credentials and middleware that resolves the request's viewer.
package auth

import "context"

type ctxKey string

const ctxViewer ctxKey = "viewer"

// WithViewer returns a context carrying the authenticated user's ID.
func WithViewer(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxViewer, userID)
}

// ViewerID returns the authenticated user's ID from the context, or nil when
// the request is anonymous.
func ViewerID(ctx context.Context) *int64 {
	id, ok := ctx.Value(ctxViewer).(int64)
	if !ok {
		return nil
	}
	return &id
}

// MustViewerID returns the authenticated user's ID from the context.
// It panics when the request is anonymous; handlers behind Required can rely
// on the middleware having set the viewer.
func MustViewerID(ctx context.Context) int64 {
	id, ok := ctx.Value(ctxViewer).(int64)
	if !ok {
		panic("auth: no viewer in context")
	}
	return id
}
