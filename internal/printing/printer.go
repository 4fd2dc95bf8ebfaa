// Package printing sends annotated certificates to a CUPS printer.
package printing

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/avast/retry-go/v4"
)

// Printer submits PDFs via lp. An empty printer name uses the system
// default destination.
type Printer struct {
	name     string
	attempts uint
	delay    time.Duration
	logger   *slog.Logger
}

// New creates a printer. attempts of 0 means a single try.
func New(name string, attempts uint, delay time.Duration, logger *slog.Logger) *Printer {
	if attempts == 0 {
		attempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Printer{name: name, attempts: attempts, delay: delay, logger: logger}
}

// Available reports whether printing can be attempted on this host.
func (p *Printer) Available() bool {
	if _, err := exec.LookPath("lp"); err != nil {
		return false
	}
	if p.name == "" {
		return true
	}
	// lpstat -p exits non-zero for unknown destinations.
	return exec.Command("lpstat", "-p", p.name).Run() == nil
}

// Print submits one PDF, retrying on spooler failures. A print failure is
// reported to the caller but is expected to downgrade the document to
// annotated-only rather than fail the batch.
func (p *Printer) Print(ctx context.Context, pdfPath string) error {
	err := retry.Do(
		func() error { return p.printOnce(ctx, pdfPath) },
		retry.Context(ctx),
		retry.Attempts(p.attempts),
		retry.Delay(p.delay),
		retry.OnRetry(func(n uint, err error) {
			p.logger.Warn("print attempt failed", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("print %s: %w", pdfPath, err)
	}
	p.logger.Info("sent to printer", "file", pdfPath, "printer", p.destination())
	return nil
}

func (p *Printer) printOnce(ctx context.Context, pdfPath string) error {
	args := []string{}
	if p.name != "" {
		args = append(args, "-d", p.name)
	}
	args = append(args, pdfPath)

	output, err := exec.CommandContext(ctx, "lp", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("lp failed: %w (output: %s)", err, string(output))
	}
	return nil
}

func (p *Printer) destination() string {
	if p.name == "" {
		return "default"
	}
	return p.name
}
