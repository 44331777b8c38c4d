//go:build linux

package transport

import (
	"fmt"
	"os"
	"syscall"

	"github.com/godzie44/go-uring/uring"

	httperrors "github.com/genryu22/learn-browser/errors"
)

// UringSocketV2 implements Socket using godzie44/go-uring for async I/O
type UringSocketV2 struct {
	ring *uring.Ring
	fd   int
	file *os.File
}

// NewUringSocketV2 creates a new TCP socket with io_uring (v2 using godzie44/go-uring)
func NewUringSocketV2() (*UringSocketV2, error) {
	// Create io_uring instance with queue depth of 32
	ring, err := uring.New(32)
	if err != nil {
		return nil, httperrors.NewTransportError(
			httperrors.KindConnectFailed,
			"failed to initialize io_uring",
			err,
		)
	}

	return &UringSocketV2{
		ring: ring,
		fd:   -1,
	}, nil
}

// Connect establishes a TCP connection
func (s *UringSocketV2) Connect(host string, port uint16) error {
	if s.fd >= 0 {
		return httperrors.NewTransportError(httperrors.KindConnectFailed, "already connected", nil)
	}
	if s.ring == nil {
		return httperrors.NewTransportError(httperrors.KindConnectFailed, "socket closed", nil)
	}

	addr := joinHostPort(host, port)
	fd, sa, err := openStreamSocket(addr)
	if err != nil {
		return err
	}

	// Use blocking connect for now
	if err := syscall.Connect(fd, sa); err != nil {
		syscall.Close(fd)
		return httperrors.NewTransportError(
			httperrors.KindConnectFailed,
			fmt.Sprintf("failed to connect to %s", addr),
			err,
		)
	}

	s.fd = fd
	s.file = os.NewFile(uintptr(fd), "socket")
	return nil
}

// Write sends data over the connection using io_uring
func (s *UringSocketV2) Write(buf []byte) (int, error) {
	if s.fd < 0 {
		return 0, httperrors.NewTransportError(httperrors.KindSendFailed, "not connected", nil)
	}

	totalWritten := 0
	for totalWritten < len(buf) {
		n, err := s.submit(uring.Write(s.file.Fd(), buf[totalWritten:], 0), httperrors.KindSendFailed, "write")
		if err != nil {
			return totalWritten, err
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
func (s *UringSocketV2) Read(buf []byte) (int, error) {
	if s.fd < 0 {
		return 0, httperrors.NewTransportError(httperrors.KindReadFailed, "not connected", nil)
	}

	n, err := s.submit(uring.Read(s.file.Fd(), buf, 0), httperrors.KindReadFailed, "read")
	if err != nil {
		return 0, err
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

// submit queues one operation, waits for its completion and returns the
// completion result.
func (s *UringSocketV2) submit(op uring.Operation, kind httperrors.Kind, name string) (int, error) {
	if err := s.ring.QueueSQE(op, 0, 0); err != nil {
		return 0, httperrors.NewTransportError(kind, fmt.Sprintf("failed to queue %s request", name), err)
	}

	if _, err := s.ring.Submit(); err != nil {
		return 0, httperrors.NewTransportError(kind, fmt.Sprintf("failed to submit %s request", name), err)
	}

	cqe, err := s.ring.WaitCQEvents(1)
	if err != nil {
		return 0, httperrors.NewTransportError(kind, fmt.Sprintf("failed to wait for %s completion", name), err)
	}
	defer s.ring.SeenCQE(cqe)

	if err := cqe.Error(); err != nil {
		return 0, httperrors.NewTransportError(kind, fmt.Sprintf("%s operation failed", name), err)
	}

	return int(cqe.Res), nil
}

// Close closes the connection and releases the ring
func (s *UringSocketV2) Close() error {
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
	s.fd = -1

	if s.ring != nil {
		s.ring.Close()
		s.ring = nil
	}

	return nil
}
