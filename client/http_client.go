package client

import (
	"crypto/tls"
	"fmt"
	"time"

	"go.uber.org/zap"

	httperrors "github.com/genryu22/learn-browser/errors"
	"github.com/genryu22/learn-browser/protocol"
	"github.com/genryu22/learn-browser/transport"
	"github.com/genryu22/learn-browser/url"
)

// Backend selects the socket implementation behind the plaintext provider
type Backend int

const (
	BackendNet Backend = iota
	BackendUring
	BackendUringV2
)

func (b Backend) String() string {
	switch b {
	case BackendNet:
		return "net"
	case BackendUring:
		return "uring"
	case BackendUringV2:
		return "uring2"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// ParseBackend maps a backend name ("net", "uring", "uring2") to a Backend
func ParseBackend(name string) (Backend, error) {
	switch name {
	case "", "net":
		return BackendNet, nil
	case "uring":
		return BackendUring, nil
	case "uring2":
		return BackendUringV2, nil
	default:
		return 0, httperrors.NewInvalidArgumentError(fmt.Sprintf("unknown backend %q", name))
	}
}

// Options configures an HttpClient. The zero value requests over the
// standard library sockets on ports 80 and 443 with no deadline.
type Options struct {
	// Backend applies to plain http; https always dials through the
	// standard library so the TLS handshake can run over it.
	Backend Backend

	// HttpPort and HttpsPort override the fixed per-scheme ports.
	HttpPort  uint16
	HttpsPort uint16

	// Timeout bounds dialing and the whole exchange afterwards.
	// Ignored by the io_uring backends.
	Timeout time.Duration

	// UnixSocket, when set, is dialed instead of host:port.
	UnixSocket string

	// TlsConfig is cloned for every https request. Nil verifies against
	// the system roots.
	TlsConfig *tls.Config

	// Logger overrides the package logger.
	Logger *zap.Logger
}

// HttpClient performs one independent exchange per Request call
type HttpClient struct {
	opts Options
}

// New creates a new HTTP client
func New(opts Options) *HttpClient {
	return &HttpClient{opts: opts}
}

var defaultClient = New(Options{})

// Request performs a GET for u with the default options
func Request(u url.Url) (*protocol.HttpResponse, error) {
	return defaultClient.Request(u)
}

// Get parses raw and performs a GET for it with the default options
func Get(raw string) (*protocol.HttpResponse, error) {
	return defaultClient.Get(raw)
}

// Get parses raw and performs a GET for it
func (c *HttpClient) Get(raw string) (*protocol.HttpResponse, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	return c.Request(u)
}

// Request selects a transport for u.Scheme, performs the exchange and
// returns the parsed response. Nothing is retried.
func (c *HttpClient) Request(u url.Url) (*protocol.HttpResponse, error) {
	log := c.logger().With(zap.Stringer("url", u))

	t, err := c.NewTransport(u.Scheme)
	if err != nil {
		log.Debug("no transport for scheme", zap.Error(err))
		return nil, err
	}

	port := c.Port(u.Scheme)
	started := time.Now()

	resp, err := protocol.NewHttp1Protocol(t, log).Request(u, port)
	if err != nil {
		log.Debug("request failed",
			zap.Error(err),
			zap.String("stage", string(httperrors.StageOf(err))),
		)
		return nil, err
	}

	log.Debug("request completed",
		zap.Uint16("status", resp.Status),
		zap.Int("body_bytes", len(resp.Body)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return resp, nil
}

// Port returns the port used for scheme
func (c *HttpClient) Port(scheme url.Scheme) uint16 {
	switch {
	case scheme == url.SchemeHttps && c.opts.HttpsPort != 0:
		return c.opts.HttpsPort
	case scheme == url.SchemeHttp && c.opts.HttpPort != 0:
		return c.opts.HttpPort
	default:
		return scheme.DefaultPort()
	}
}

// NewTransport builds a fresh, unconnected transport for scheme:
// the plaintext provider for http and the encrypted provider for https.
func (c *HttpClient) NewTransport(scheme url.Scheme) (transport.Transport, error) {
	switch scheme {
	case url.SchemeHttp:
		socket, err := c.plainSocket()
		if err != nil {
			return nil, err
		}
		c.logger().Debug("selected plaintext transport", zap.Stringer("backend", c.opts.Backend))
		return transport.NewPlainTransport(socket), nil

	case url.SchemeHttps:
		if c.opts.Backend != BackendNet {
			c.logger().Debug("https ignores the configured backend", zap.Stringer("backend", c.opts.Backend))
		}
		c.logger().Debug("selected TLS transport")
		if c.opts.UnixSocket != "" {
			return transport.NewPlainTransport(
				transport.NewUnixTlsSocket(c.opts.UnixSocket, c.opts.TlsConfig, c.opts.Timeout),
			), nil
		}
		return transport.NewTlsTransport(c.opts.TlsConfig, c.opts.Timeout), nil

	default:
		return nil, httperrors.NewInvalidArgumentError(fmt.Sprintf("no transport for %v", scheme))
	}
}

func (c *HttpClient) plainSocket() (transport.Socket, error) {
	if c.opts.UnixSocket != "" {
		return transport.NewUnixSocket(c.opts.UnixSocket, c.opts.Timeout), nil
	}

	switch c.opts.Backend {
	case BackendNet:
		return transport.NewTcpSocket(c.opts.Timeout), nil
	case BackendUring:
		socket, err := transport.NewUringSocket()
		if err != nil {
			return nil, err
		}
		return socket, nil
	case BackendUringV2:
		socket, err := transport.NewUringSocketV2()
		if err != nil {
			return nil, err
		}
		return socket, nil
	default:
		return nil, httperrors.NewInvalidArgumentError(fmt.Sprintf("unknown backend %v", c.opts.Backend))
	}
}

func (c *HttpClient) logger() *zap.Logger {
	if c.opts.Logger != nil {
		return c.opts.Logger
	}
	return Logger()
}
