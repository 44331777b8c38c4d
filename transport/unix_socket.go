package transport

import (
	"fmt"
	"net"
	"time"

	httperrors "github.com/genryu22/learn-browser/errors"
)

// UnixSocket implements the Socket interface using Unix domain sockets.
// The request still names the URL host; only the dial target changes.
type UnixSocket struct {
	connSocket
	path    string
	timeout time.Duration
}

// NewUnixSocket creates a new UnixSocket that dials path
func NewUnixSocket(path string, timeout time.Duration) *UnixSocket {
	return &UnixSocket{
		path:    path,
		timeout: timeout,
	}
}

// Connect establishes a Unix domain socket connection to the configured path.
// The host and port parameters are ignored.
func (s *UnixSocket) Connect(host string, port uint16) error {
	if s.conn != nil {
		return httperrors.NewTransportError(httperrors.KindConnectFailed, "already connected", nil)
	}

	dialer := net.Dialer{Timeout: s.timeout}
	conn, err := dialer.Dial("unix", s.path)
	if err != nil {
		return httperrors.NewTransportError(
			httperrors.KindConnectFailed,
			fmt.Sprintf("failed to connect to unix socket %s", s.path),
			err,
		)
	}

	if err := applyDeadline(conn, s.timeout); err != nil {
		conn.Close()
		return err
	}

	s.conn = conn
	return nil
}
