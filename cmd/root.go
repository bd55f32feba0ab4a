// Package cmd wires up the CLI flags and drives the link client.
package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"pdlink/config"
	"pdlink/internal/logger"
	"pdlink/link"
)

// version is overridable at link time:
//
//	go build -ldflags "-X pdlink/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args, connects the client, and relays stdin lines to
// the peer while printing replies to stdout.
func Execute(ctx context.Context, args []string) error {
	cfg := config.Default()
	if err := config.LoadFromEnv(cfg); err != nil {
		return err
	}

	fs := flag.NewFlagSet("pdlink", flag.ContinueOnError)

	// ── connection ───────────────────────────────────────────────
	fs.BoolVarP(&cfg.Sync, "sync", "s", cfg.Sync, "Synchronous mode (blocking send/receive)")

	var timeoutSec int
	fs.IntVarP(&timeoutSec, "timeout", "w", 0, "Dial timeout in seconds")

	// ── behaviour ────────────────────────────────────────────────
	fs.DurationVar(&cfg.PollInterval, "interval", cfg.PollInterval, "Reply poll interval")
	fs.BoolVar(&cfg.ShowStats, "stats", cfg.ShowStats, "Print transport statistics on exit")

	var dryRun bool
	fs.BoolVar(&dryRun, "dry-run", false, "Validate configuration and exit")

	// ── output ───────────────────────────────────────────────────
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (repeatable)")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("pdlink %s\n", version)
		return nil
	}

	if timeoutSec > 0 {
		cfg.DialTimeout = time.Duration(timeoutSec) * time.Second
	}

	// ── positional arguments ─────────────────────────────────────
	if err := parsePositional(cfg, fs.Args()); err != nil {
		return err
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}
	if dryRun {
		return nil
	}

	// In sync mode a Receive is one blocking OS read; the poll loop
	// below needs it bounded or a silent peer freezes the CLI.
	if cfg.Sync && cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = cfg.PollInterval
	}

	// ── build components ─────────────────────────────────────────
	log := logger.New(cfg.Verbose)
	cli := link.New(cfg, log)

	if err := cli.Start(ctx); err != nil {
		return err
	}
	defer cli.Close()

	err := relay(ctx, cli, cfg, os.Stdin, os.Stdout)

	if cfg.ShowStats {
		enc := json.NewEncoder(os.Stderr)
		enc.SetIndent("", "  ")
		enc.Encode(cli.Stats()) //nolint:errcheck
	}
	return err
}

// relay pumps lines from in to the peer and replies from the peer to
// out, until in is exhausted or ctx is cancelled. One Send per line,
// newline re-appended, matching the peer's line-oriented protocol.
func relay(ctx context.Context, cli *link.Client, cfg *config.Config, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				// Stdin is done; give in-flight replies one last
				// grace window before leaving.
				drain(cli, out, 5*cfg.PollInterval)
				return nil
			}
			if err := cli.Send([]byte(line + "\n")); err != nil {
				return fmt.Errorf("send: %w", err)
			}

		case <-ticker.C:
			for {
				reply, ok := cli.Receive()
				if !ok {
					break
				}
				fmt.Fprint(out, reply)
			}
		}
	}
}

// drain prints whatever the peer still has to say within the window.
func drain(cli *link.Client, out io.Writer, window time.Duration) {
	deadline := time.Now().Add(window)
	for time.Now().Before(deadline) {
		reply, ok := cli.ReceiveWait(time.Until(deadline))
		if !ok {
			return
		}
		fmt.Fprint(out, reply)
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func parsePositional(cfg *config.Config, remaining []string) error {
	switch len(remaining) {
	case 0: // fall back to defaults / env
	case 1:
		cfg.Host = remaining[0]
	case 2:
		cfg.Host = remaining[0]
		port, err := config.ParsePort(remaining[1])
		if err != nil {
			return fmt.Errorf("port: %w", err)
		}
		cfg.Port = port
	default:
		return fmt.Errorf("too many arguments (expected [host [port]])")
	}
	return nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `pdlink – line-oriented TCP bridge to Pure Data v%s

Relays stdin lines to a remote Pure Data netreceive and prints its
replies, over a persistent TCP connection in queued or blocking mode.

Usage:
  pdlink [options] [host [port]]

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Environment:
  PDLINK_HOST, PDLINK_PORT, PDLINK_SYNC, PDLINK_DIAL_TIMEOUT, ...
  (flags take precedence over environment variables)

Examples:
  pdlink                                      Connect to localhost:3001
  pdlink -s pd-box 3005                       Blocking mode, custom peer
  echo "clear;" | pdlink -v localhost 3001    Pipe one command
`)
}
