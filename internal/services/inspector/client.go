package inspector

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"mccread/internal/services"
)

// Artifacts lists the decode outputs deposited next to each other in the
// output directory, named after the input's base name.
type Artifacts struct {
	CEA608     []string // one per line-21 channel, sorted
	CEA708     []string // one per DTVCC service, sorted
	Descriptor string   // closed-caption descriptor (.ccd)
	Debug      string   // decoder debug log (.dbg)
}

// Decoder defines the behaviour required by the reader pipeline.
type Decoder interface {
	Decode(ctx context.Context, inputPath, outputDir string) (Artifacts, error)
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onOutput func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps Caption Inspector CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs a Caption Inspector client.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("caption inspector binary required")
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Decode runs the decoder against inputPath, depositing artifacts in
// outputDir. Process output is retained and attached to the returned error so
// decode failures surface the decoder's own diagnostics.
func (c *Client) Decode(ctx context.Context, inputPath, outputDir string) (Artifacts, error) {
	if strings.TrimSpace(outputDir) == "" {
		return Artifacts{}, errors.New("output directory required")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Artifacts{}, fmt.Errorf("create output directory: %w", err)
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	// The executor forwards stdout and stderr from separate goroutines.
	var mu sync.Mutex
	var output []string
	args := []string{"-o", outputDir, inputPath}
	if err := c.exec.Run(runCtx, c.binary, args, func(line string) {
		mu.Lock()
		output = append(output, line)
		mu.Unlock()
	}); err != nil {
		marker := services.ErrExternalTool
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			marker = services.ErrTimeout
		}
		return Artifacts{}, services.Wrap(marker, "decode", "caption-inspector", tail(output), err)
	}

	artifacts, err := Discover(outputDir)
	if err != nil {
		return Artifacts{}, services.Wrap(services.ErrExternalTool, "decode", "caption-inspector", tail(output), err)
	}
	return artifacts, nil
}

// Discover locates the decode artifacts in dir. At least one caption stream
// artifact must be present; a decode that produced none is a failure, not an
// empty result.
func Discover(dir string) (Artifacts, error) {
	var artifacts Artifacts

	glob := func(pattern string) []string {
		matches, _ := filepath.Glob(filepath.Join(dir, pattern))
		sort.Strings(matches)
		return matches
	}

	artifacts.CEA608 = glob("*.608")
	artifacts.CEA708 = glob("*.708")
	if ccd := glob("*.ccd"); len(ccd) > 0 {
		artifacts.Descriptor = ccd[0]
	}
	if dbg := glob("*.dbg"); len(dbg) > 0 {
		artifacts.Debug = dbg[0]
	}

	if len(artifacts.CEA608) == 0 && len(artifacts.CEA708) == 0 {
		return Artifacts{}, fmt.Errorf("no caption artifacts in %s", dir)
	}
	return artifacts, nil
}

// All returns every artifact path in a stable order.
func (a Artifacts) All() []string {
	paths := make([]string, 0, len(a.CEA608)+len(a.CEA708)+2)
	paths = append(paths, a.CEA608...)
	paths = append(paths, a.CEA708...)
	if a.Descriptor != "" {
		paths = append(paths, a.Descriptor)
	}
	if a.Debug != "" {
		paths = append(paths, a.Debug)
	}
	return paths
}

func tail(lines []string) string {
	const keep = 5
	if len(lines) > keep {
		lines = lines[len(lines)-keep:]
	}
	return strings.TrimSpace(strings.Join(lines, " | "))
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onOutput func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once

	scan := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if onOutput != nil {
				onOutput(scanner.Text())
			}
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
			})
		}
	}

	wg.Add(2)
	go scan(stdout)
	go scan(stderr)

	wg.Wait()
	if scanErr != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("scan output: %w", scanErr)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}
