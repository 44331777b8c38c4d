package transport

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"syscall"
	"time"

	httperrors "github.com/genryu22/learn-browser/errors"
)

// TcpSocket implements the Socket interface using TCP sockets
type TcpSocket struct {
	connSocket
	timeout time.Duration
}

// NewTcpSocket creates a new TcpSocket. A non-zero timeout bounds the dial
// and every later read and write on the connection.
func NewTcpSocket(timeout time.Duration) *TcpSocket {
	return &TcpSocket{timeout: timeout}
}

// Connect establishes a TCP connection to the specified host and port
func (s *TcpSocket) Connect(host string, port uint16) error {
	if s.conn != nil {
		return httperrors.NewTransportError(httperrors.KindConnectFailed, "already connected", nil)
	}

	addr := joinHostPort(host, port)
	dialer := net.Dialer{Timeout: s.timeout}

	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return classifyDialError(addr, err)
	}

	// Disable Nagle's algorithm; the request goes out in a single write.
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		if err := tcpConn.SetNoDelay(true); err != nil {
			conn.Close()
			return httperrors.NewTransportError(httperrors.KindConnectFailed, "failed to set TCP_NODELAY", err)
		}
	}

	if err := applyDeadline(conn, s.timeout); err != nil {
		conn.Close()
		return err
	}

	s.conn = conn
	return nil
}

// connSocket carries the Write/Read/Close behaviour shared by every socket
// that sits on a net.Conn.
type connSocket struct {
	conn net.Conn
}

// Write sends data over the connection
func (s *connSocket) Write(buf []byte) (int, error) {
	if s.conn == nil {
		return 0, httperrors.NewTransportError(httperrors.KindSendFailed, "not connected", nil)
	}

	n, err := s.conn.Write(buf)
	if err != nil {
		if errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) {
			return n, httperrors.NewTransportError(httperrors.KindSendFailed, "connection closed by peer", err)
		}
		if isTimeout(err) {
			return n, httperrors.NewTransportError(httperrors.KindSendFailed, "write timed out", err)
		}
		return n, httperrors.NewTransportError(httperrors.KindSendFailed, "write failed", err)
	}

	return n, nil
}

// Read receives data from the connection
func (s *connSocket) Read(buf []byte) (int, error) {
	if s.conn == nil {
		return 0, httperrors.NewTransportError(httperrors.KindReadFailed, "not connected", nil)
	}

	n, err := s.conn.Read(buf)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return n, httperrors.NewTransportError(httperrors.KindEndOfStream, "connection closed by peer", err)
		}
		if isTimeout(err) {
			return n, httperrors.NewTransportError(httperrors.KindReadFailed, "read timed out", err)
		}
		return n, httperrors.NewTransportError(httperrors.KindReadFailed, "read failed", err)
	}

	return n, nil
}

// Close closes the connection
func (s *connSocket) Close() error {
	if s.conn == nil {
		return nil // Idempotent close
	}

	err := s.conn.Close()
	s.conn = nil

	if err != nil {
		return httperrors.NewTransportError(httperrors.KindReadFailed, "close failed", err)
	}

	return nil
}

func joinHostPort(host string, port uint16) string {
	return net.JoinHostPort(host, strconv.Itoa(int(port)))
}

// classifyDialError maps a dial failure onto a connect error whose message
// tells DNS failures apart from refused connections.
func classifyDialError(addr string, err error) error {
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &dnsErr):
		return httperrors.NewTransportError(
			httperrors.KindConnectFailed,
			fmt.Sprintf("DNS lookup for %s failed", addr),
			err,
		)
	case errors.Is(err, syscall.ECONNREFUSED):
		return httperrors.NewTransportError(
			httperrors.KindConnectFailed,
			fmt.Sprintf("connection to %s refused", addr),
			err,
		)
	case isTimeout(err):
		return httperrors.NewTransportError(
			httperrors.KindConnectFailed,
			fmt.Sprintf("connection to %s timed out", addr),
			err,
		)
	default:
		return httperrors.NewTransportError(
			httperrors.KindConnectFailed,
			fmt.Sprintf("failed to connect to %s", addr),
			err,
		)
	}
}

func applyDeadline(conn net.Conn, timeout time.Duration) error {
	if timeout <= 0 {
		return nil
	}
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return httperrors.NewTransportError(httperrors.KindConnectFailed, "failed to set deadline", err)
	}
	return nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
