package main

import (
	"crypto/tls"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/genryu22/learn-browser/client"
)

const defaultURL = "https://browser.engineering/examples/xiyouji.html"

func main() {
	var (
		timeout  = flag.Duration("timeout", 30*time.Second, "Deadline for the whole request (0 disables)")
		insecure = flag.Bool("insecure", false, "Skip TLS certificate verification")
		logFile  = flag.String("log-file", "", "Write debug logs to this file")
	)
	flag.Parse()

	rawURL := flag.Arg(0)
	if rawURL == "" {
		rawURL = defaultURL
	}

	logger, err := newLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts := client.Options{
		Timeout: *timeout,
		Logger:  logger,
	}
	if *insecure {
		opts.TlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	var programOpts []tea.ProgramOption
	if term.IsTerminal(int(os.Stdout.Fd())) {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(newWindowModel(client.New(opts), rawURL), programOpts...)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger logs to path at debug level. The terminal belongs to the
// window, so without a path nothing is logged.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
