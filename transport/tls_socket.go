package transport

import (
	"crypto/tls"
	"fmt"
	"net"
	"time"

	httperrors "github.com/genryu22/learn-browser/errors"
)

// TlsSocket implements the Socket interface over a TLS client connection.
// The handshake completes inside Connect, so reads and writes only ever see
// application data. Certificate verification follows the supplied config.
type TlsSocket struct {
	connSocket
	config   *tls.Config
	timeout  time.Duration
	unixPath string
}

// NewTlsSocket creates a TlsSocket that dials TCP. A nil config verifies the
// peer against the system roots using the connect host as server name.
func NewTlsSocket(config *tls.Config, timeout time.Duration) *TlsSocket {
	return &TlsSocket{
		config:  config,
		timeout: timeout,
	}
}

// NewUnixTlsSocket creates a TlsSocket whose underlying stream is the Unix
// domain socket at path.
func NewUnixTlsSocket(path string, config *tls.Config, timeout time.Duration) *TlsSocket {
	return &TlsSocket{
		config:   config,
		timeout:  timeout,
		unixPath: path,
	}
}

// Connect dials host:port and performs the TLS handshake
func (s *TlsSocket) Connect(host string, port uint16) error {
	if s.conn != nil {
		return httperrors.NewTransportError(httperrors.KindConnectFailed, "already connected", nil)
	}

	raw, err := s.dial(host, port)
	if err != nil {
		return err
	}

	if err := applyDeadline(raw, s.timeout); err != nil {
		raw.Close()
		return err
	}

	config := s.clientConfig(host)
	conn := tls.Client(raw, config)
	if err := conn.Handshake(); err != nil {
		raw.Close()
		return httperrors.NewTransportError(
			httperrors.KindConnectFailed,
			fmt.Sprintf("TLS handshake with %s failed", config.ServerName),
			err,
		)
	}

	s.conn = conn
	return nil
}

func (s *TlsSocket) dial(host string, port uint16) (net.Conn, error) {
	dialer := net.Dialer{Timeout: s.timeout}

	if s.unixPath != "" {
		conn, err := dialer.Dial("unix", s.unixPath)
		if err != nil {
			return nil, httperrors.NewTransportError(
				httperrors.KindConnectFailed,
				fmt.Sprintf("failed to connect to unix socket %s", s.unixPath),
				err,
			)
		}
		return conn, nil
	}

	addr := joinHostPort(host, port)
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return nil, classifyDialError(addr, err)
	}
	return conn, nil
}

func (s *TlsSocket) clientConfig(host string) *tls.Config {
	var config *tls.Config
	if s.config != nil {
		config = s.config.Clone()
	} else {
		config = &tls.Config{}
	}
	if config.ServerName == "" {
		config.ServerName = host
	}
	return config
}
