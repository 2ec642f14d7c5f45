// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about diagram
// generation and rendering without the library depending on a specific
// backend (OpenTelemetry, Prometheus, plain logs).
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGeneratorHooks(&myHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Generator().OnRenderStart(ctx, name, output)
//	// ... render ...
//	observability.Generator().OnRenderComplete(ctx, name, output, duration, err)
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// GeneratorHooks receives events from diagram generators and the batch runner.
type GeneratorHooks interface {
	// Generate events, one pair per generator per run
	OnGenerateStart(ctx context.Context, name string)
	OnGenerateComplete(ctx context.Context, name string, duration time.Duration, err error)

	// Render events, one pair per renderer invocation
	OnRenderStart(ctx context.Context, name, output string)
	OnRenderComplete(ctx context.Context, name, output string, duration time.Duration, err error)
}

// NoopGeneratorHooks is a no-op implementation of GeneratorHooks.
type NoopGeneratorHooks struct{}

func (NoopGeneratorHooks) OnGenerateStart(context.Context, string)                                {}
func (NoopGeneratorHooks) OnGenerateComplete(context.Context, string, time.Duration, error)       {}
func (NoopGeneratorHooks) OnRenderStart(context.Context, string, string)                          {}
func (NoopGeneratorHooks) OnRenderComplete(context.Context, string, string, time.Duration, error) {}

// LogHooks writes every event to a logger at debug level.
type LogHooks struct {
	Logger *log.Logger
}

func (h LogHooks) OnGenerateStart(_ context.Context, name string) {
	h.Logger.Debug("generate start", "diagram", name)
}

func (h LogHooks) OnGenerateComplete(_ context.Context, name string, d time.Duration, err error) {
	h.Logger.Debug("generate complete", "diagram", name, "duration", d.Round(time.Millisecond), "ok", err == nil)
}

func (h LogHooks) OnRenderStart(_ context.Context, name, output string) {
	h.Logger.Debug("render start", "diagram", name, "output", output)
}

func (h LogHooks) OnRenderComplete(_ context.Context, name, output string, d time.Duration, err error) {
	h.Logger.Debug("render complete", "diagram", name, "output", output, "duration", d.Round(time.Millisecond), "ok", err == nil)
}

var (
	generatorHooks GeneratorHooks = NoopGeneratorHooks{}
	hooksMu        sync.RWMutex
)

// SetGeneratorHooks registers custom generator hooks.
// This should be called once at application startup before any generation.
func SetGeneratorHooks(h GeneratorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		generatorHooks = h
	}
}

// Generator returns the registered generator hooks.
func Generator() GeneratorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return generatorHooks
}

// Reset restores the no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	generatorHooks = NoopGeneratorHooks{}
}
