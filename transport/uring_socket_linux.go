//go:build linux

package transport

import (
	"fmt"
	"net"
	"syscall"

	"github.com/iceber/iouring-go"

	httperrors "github.com/genryu22/learn-browser/errors"
)

// UringSocket implements Socket using io_uring for async I/O
type UringSocket struct {
	iour *iouring.IOURing
	fd   int
}

// NewUringSocket creates a new TCP socket with io_uring
func NewUringSocket() (*UringSocket, error) {
	// Create io_uring instance with queue depth of 32
	iour, err := iouring.New(32)
	if err != nil {
		return nil, httperrors.NewTransportError(
			httperrors.KindConnectFailed,
			"failed to initialize io_uring",
			err,
		)
	}

	return &UringSocket{
		iour: iour,
		fd:   -1,
	}, nil
}

// Connect establishes a TCP connection using io_uring
func (s *UringSocket) Connect(host string, port uint16) error {
	if s.fd >= 0 {
		return httperrors.NewTransportError(httperrors.KindConnectFailed, "already connected", nil)
	}
	if s.iour == nil {
		return httperrors.NewTransportError(httperrors.KindConnectFailed, "socket closed", nil)
	}

	addr := joinHostPort(host, port)
	fd, sa, err := openStreamSocket(addr)
	if err != nil {
		return err
	}

	// Set socket to non-blocking mode for io_uring
	if err := syscall.SetNonblock(fd, true); err != nil {
		syscall.Close(fd)
		return httperrors.NewTransportError(
			httperrors.KindConnectFailed,
			"failed to set non-blocking mode",
			err,
		)
	}

	prepReq, err := iouring.Connect(fd, sa)
	if err != nil {
		syscall.Close(fd)
		return httperrors.NewTransportError(
			httperrors.KindConnectFailed,
			"failed to prepare connect request",
			err,
		)
	}

	// Submit connect operation via io_uring
	ch := make(chan iouring.Result, 1)
	if _, err := s.iour.SubmitRequest(prepReq, ch); err != nil {
		syscall.Close(fd)
		return httperrors.NewTransportError(
			httperrors.KindConnectFailed,
			"failed to submit connect request",
			err,
		)
	}

	// Connect resolves to an error only; it carries no int result.
	result := <-ch
	if err := result.Err(); err != nil {
		syscall.Close(fd)
		return httperrors.NewTransportError(
			httperrors.KindConnectFailed,
			fmt.Sprintf("failed to connect to %s", addr),
			err,
		)
	}

	s.fd = fd
	return nil
}

// Write sends data over the connection using io_uring
func (s *UringSocket) Write(buf []byte) (int, error) {
	if s.fd < 0 {
		return 0, httperrors.NewTransportError(httperrors.KindSendFailed, "not connected", nil)
	}

	totalWritten := 0
	for totalWritten < len(buf) {
		ch := make(chan iouring.Result, 1)
		if _, err := s.iour.SubmitRequest(iouring.Send(s.fd, buf[totalWritten:], 0), ch); err != nil {
			return totalWritten, httperrors.NewTransportError(
				httperrors.KindSendFailed,
				"failed to submit write request",
				err,
			)
		}

		result := <-ch
		n, err := result.ReturnInt()
		if err != nil {
			return totalWritten, httperrors.NewTransportError(httperrors.KindSendFailed, "write failed", err)
		}
		if n <= 0 {
			return totalWritten, httperrors.NewTransportError(
				httperrors.KindSendFailed,
				"connection closed during write",
				nil,
			)
		}

		totalWritten += n
	}

	return totalWritten, nil
}

// Read receives data from the connection using io_uring
func (s *UringSocket) Read(buf []byte) (int, error) {
	if s.fd < 0 {
		return 0, httperrors.NewTransportError(httperrors.KindReadFailed, "not connected", nil)
	}

	ch := make(chan iouring.Result, 1)
	if _, err := s.iour.SubmitRequest(iouring.Recv(s.fd, buf, 0), ch); err != nil {
		return 0, httperrors.NewTransportError(
			httperrors.KindReadFailed,
			"failed to submit read request",
			err,
		)
	}

	result := <-ch
	n, err := result.ReturnInt()
	if err != nil {
		return 0, httperrors.NewTransportError(httperrors.KindReadFailed, "read failed", err)
	}

	if n == 0 && len(buf) > 0 {
		return 0, httperrors.NewTransportError(
			httperrors.KindEndOfStream,
			"connection closed by peer",
			nil,
		)
	}

	return n, nil
}

// Close closes the connection and releases the io_uring instance
func (s *UringSocket) Close() error {
	var closeErr error
	if s.fd >= 0 {
		if err := syscall.Close(s.fd); err != nil {
			closeErr = httperrors.NewTransportError(httperrors.KindReadFailed, "failed to close socket", err)
		}
		s.fd = -1
	}

	if s.iour != nil {
		s.iour.Close()
		s.iour = nil
	}

	return closeErr
}

// openStreamSocket resolves addr and creates a TCP socket of the matching
// address family. The socket is not connected yet.
func openStreamSocket(addr string) (int, syscall.Sockaddr, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return -1, nil, httperrors.NewTransportError(
			httperrors.KindConnectFailed,
			fmt.Sprintf("DNS lookup for %s failed", addr),
			err,
		)
	}

	family := syscall.AF_INET6
	var sa syscall.Sockaddr
	if ip4 := tcpAddr.IP.To4(); ip4 != nil {
		family = syscall.AF_INET
		sa4 := &syscall.SockaddrInet4{Port: tcpAddr.Port}
		copy(sa4.Addr[:], ip4)
		sa = sa4
	} else {
		sa6 := &syscall.SockaddrInet6{Port: tcpAddr.Port}
		copy(sa6.Addr[:], tcpAddr.IP.To16())
		sa = sa6
	}

	fd, err := syscall.Socket(family, syscall.SOCK_STREAM, 0)
	if err != nil {
		return -1, nil, httperrors.NewTransportError(
			httperrors.KindConnectFailed,
			"failed to create socket",
			err,
		)
	}

	if err := syscall.SetsockoptInt(fd, syscall.IPPROTO_TCP, syscall.TCP_NODELAY, 1); err != nil {
		syscall.Close(fd)
		return -1, nil, httperrors.NewTransportError(
			httperrors.KindConnectFailed,
			"failed to set TCP_NODELAY",
			err,
		)
	}

	return fd, sa, nil
}
