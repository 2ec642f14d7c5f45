package render

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rafiki18/archviz/pkg/errors"
)

// Command renders by running the Graphviz binary as a subprocess:
//
//	dot -Tpng <out>.dot -o <tmp>
//
// The intermediate <out>.dot file is created before the call and removed on
// every exit path, unless [WithKeepIR] asks to keep it after a failure.
type Command struct {
	cfg config
}

// NewCommand creates a subprocess renderer.
func NewCommand(opts ...Option) *Command {
	return &Command{cfg: newConfig(opts)}
}

// IRPath returns where the intermediate DOT file for outPath is written.
func IRPath(outPath string) string {
	return strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".dot"
}

// Render writes ir to the intermediate file and runs the renderer against it.
func (c *Command) Render(ctx context.Context, ir []byte, outPath string) (err error) {
	bin, err := LookPath(c.cfg.binary)
	if err != nil {
		return err
	}

	irPath := IRPath(outPath)
	if err := os.WriteFile(irPath, ir, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", irPath)
	}
	defer func() {
		if err != nil && c.cfg.keepIR {
			c.cfg.logger.Warn("keeping intermediate DOT file", "path", irPath)
			return
		}
		_ = os.Remove(irPath)
	}()

	tmp, err := tempOutput(outPath)
	if err != nil {
		return err
	}
	defer os.Remove(tmp)

	ctx, cancel := withTimeout(ctx, c.cfg.timeout)
	defer cancel()

	args := []string{"-T" + FormatPNG, irPath, "-o", tmp}
	c.cfg.logger.Debug("running renderer", "cmd", bin, "args", strings.Join(args, " "))

	start := time.Now()
	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	runErr := cmd.Run()
	diag := strings.TrimSpace(stderr.String())
	if ctx.Err() != nil {
		return contextFailure(ctx, c.cfg.timeout, outPath, diag)
	}
	if runErr != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, runErr, "%s exited with an error", filepath.Base(bin)).WithDetail(diag)
	}

	if err := commit(tmp, outPath); err != nil {
		return err
	}
	if diag != "" {
		c.cfg.logger.Debug("renderer warnings", "output", outPath, "stderr", diag)
	}
	c.cfg.logger.Debug("rendered", "output", outPath, "duration", time.Since(start).Round(time.Millisecond))
	return nil
}
