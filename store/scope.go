package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrOutsideScope is the usage error raised when a store accessor runs
// without its provider installed.
var ErrOutsideScope = errors.New("store: accessor used outside provider scope")

// Handle is the capability a component gets to a store: read and dispatch.
type Handle[S, A any] interface {
	State() S
	Dispatch(A)
	Subscribe(func(prev, next S)) (unsubscribe func())
}

type (
	AudioHandle = Handle[AudioState, AudioAction]
	AppHandle   = Handle[AppState, AppAction]
)

type audioKey struct{}
type appKey struct{}
type sessionKey struct{}

// WithAudio installs s as the audio provider of ctx.
func WithAudio(ctx context.Context, s *AudioStore) context.Context {
	return context.WithValue(ctx, audioKey{}, AudioHandle(s))
}

// WithApp installs s as the app provider of ctx.
func WithApp(ctx context.Context, s *AppStore) context.Context {
	return context.WithValue(ctx, appKey{}, AppHandle(s))
}

// WithSession tags ctx with the id of the mounted app tree.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// Session returns the session id of ctx, or "".
func Session(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// Audio returns the audio store of ctx. It panics when no provider is
// installed; that is a programming error, not a runtime condition.
func Audio(ctx context.Context) AudioHandle {
	h, ok := ctx.Value(audioKey{}).(AudioHandle)
	if !ok || h == nil {
		panic(fmt.Errorf("%w: Audio must be used within an audio provider", ErrOutsideScope))
	}
	return h
}

// App returns the app store of ctx. It panics when no provider is installed.
func App(ctx context.Context) AppHandle {
	h, ok := ctx.Value(appKey{}).(AppHandle)
	if !ok || h == nil {
		panic(fmt.Errorf("%w: App must be used within an app provider", ErrOutsideScope))
	}
	return h
}
