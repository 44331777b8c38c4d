package main

import (
	"crypto/tls"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/genryu22/learn-browser/client"
	"github.com/genryu22/learn-browser/url"
)

const defaultURL = "http://example.org/"

type config struct {
	rawURL     string
	verbose    bool
	timeout    time.Duration
	backend    string
	unixSocket string
	insecure   bool
	width      int
}

func main() {
	var (
		verbose    = flag.Bool("v", false, "Enable debug logging")
		timeout    = flag.Duration("timeout", 30*time.Second, "Deadline for the whole request (0 disables)")
		backend    = flag.String("backend", "net", "Plaintext socket backend: net, uring, uring2")
		unixSocket = flag.String("unix-socket", "", "Connect through this Unix domain socket")
		insecure   = flag.Bool("insecure", false, "Skip TLS certificate verification")
	)
	flag.Parse()

	cfg := config{
		rawURL:     flag.Arg(0),
		verbose:    *verbose,
		timeout:    *timeout,
		backend:    *backend,
		unixSocket: *unixSocket,
		insecure:   *insecure,
		width:      terminalWidth(os.Stdout),
	}

	if cfg.rawURL == "" {
		fmt.Println("Usage: http-request-demo [flags] <url>")
		fmt.Printf("   Using default URL: %s\n\n", defaultURL)
		cfg.rawURL = defaultURL
	}

	if err := run(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config, out io.Writer) error {
	logger, err := newLogger(cfg.verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	backend, err := client.ParseBackend(cfg.backend)
	if err != nil {
		return err
	}

	u, err := url.Parse(cfg.rawURL)
	if err != nil {
		return err
	}

	opts := client.Options{
		Backend:    backend,
		Timeout:    cfg.timeout,
		UnixSocket: cfg.unixSocket,
		Logger:     logger,
	}
	if cfg.insecure {
		opts.TlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	r := newReport(out, cfg.width)
	r.urlDetails(u)

	resp, err := client.New(opts).Request(u)
	if err != nil {
		r.failure(err)
		return nil
	}

	r.response(resp)
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// terminalWidth returns the width of f when it is a terminal, otherwise 0.
func terminalWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
