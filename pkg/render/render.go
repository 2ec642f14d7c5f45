package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rafiki18/archviz/pkg/errors"
)

// DefaultTimeout bounds a single render call.
const DefaultTimeout = 60 * time.Second

// FormatPNG is the only output format.
const FormatPNG = "png"

// Renderer turns DOT text into an image at outPath.
type Renderer interface {
	Render(ctx context.Context, ir []byte, outPath string) error
}

// Func adapts a function to [Renderer].
type Func func(ctx context.Context, ir []byte, outPath string) error

// Render calls f.
func (f Func) Render(ctx context.Context, ir []byte, outPath string) error {
	return f(ctx, ir, outPath)
}

// Option configures a renderer.
type Option func(*config)

type config struct {
	timeout time.Duration
	logger  *log.Logger
	binary  string
	keepIR  bool
}

func newConfig(opts []Option) config {
	c := config{
		timeout: DefaultTimeout,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		binary:  "dot",
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// WithTimeout bounds each render call. Zero or negative disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBinary sets the Graphviz executable used by [Command].
func WithBinary(path string) Option {
	return func(c *config) {
		if path != "" {
			c.binary = path
		}
	}
}

// WithKeepIR keeps the intermediate .dot file of a failed [Command] render
// for inspection. Successful renders always remove it.
func WithKeepIR(keep bool) Option {
	return func(c *config) { c.keepIR = keep }
}

// IsFailure reports whether err is a render failure, including timeouts.
func IsFailure(err error) bool {
	return errors.Is(err, errors.ErrCodeRenderFailed)
}

// IsTimeout reports whether err is a render timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, errors.ErrCodeRenderTimeout)
}

// Stderr returns the renderer diagnostic carried by err, if any.
func Stderr(err error) string {
	return errors.Detail(err)
}

// LookPath checks that a Graphviz binary is installed.
func LookPath(binary string) (string, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeRendererMissing, err,
			"%s not found. Install Graphviz with:\n  macOS:  brew install graphviz\n  Linux:  apt install graphviz", binary)
	}
	return path, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// contextFailure converts a finished context into a render error.
func contextFailure(ctx context.Context, timeout time.Duration, outPath, stderr string) error {
	name := filepath.Base(outPath)
	if ctx.Err() == context.DeadlineExceeded {
		inner := errors.New(errors.ErrCodeRenderTimeout, "no result after %s", timeout).WithDetail(stderr)
		return errors.Wrap(errors.ErrCodeRenderFailed, inner, "render %s timed out after %s", name, timeout).WithDetail(stderr)
	}
	return errors.Wrap(errors.ErrCodeRenderFailed, ctx.Err(), "render %s cancelled", name)
}

// tempOutput creates an empty temporary file next to outPath.
func tempOutput(outPath string) (string, error) {
	dir := filepath.Dir(outPath)
	f, err := os.CreateTemp(dir, "."+filepath.Base(outPath)+".*.tmp")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "create temp file in %s", dir)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", errors.Wrap(errors.ErrCodeIO, err, "close %s", name)
	}
	return name, nil
}

// commit moves a finished temp file into place.
func commit(tmp, outPath string) error {
	info, err := os.Stat(tmp)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "stat %s", tmp)
	}
	if info.Size() == 0 {
		return errors.New(errors.ErrCodeRenderFailed, "render %s: renderer produced an empty image", filepath.Base(outPath))
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "chmod %s", tmp)
	}
	if err := os.Rename(tmp, outPath); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "move image to %s", outPath)
	}
	return nil
}

// writeAtomic writes data to outPath through a temp file.
func writeAtomic(outPath string, data []byte) error {
	tmp, err := tempOutput(outPath)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", tmp)
	}
	return commit(tmp, outPath)
}

func describe(ir []byte) string {
	return fmt.Sprintf("%d bytes", len(ir))
}
