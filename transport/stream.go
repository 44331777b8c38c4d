package transport

import (
	"bufio"
	"crypto/tls"
	"errors"
	"io"
	"time"

	httperrors "github.com/genryu22/learn-browser/errors"
)

const readBufferSize = 4096

// StreamTransport implements Transport on top of any Socket. It is the
// plaintext provider when built over a TCP, Unix or io_uring socket and the
// encrypted provider when built over a TlsSocket.
type StreamTransport struct {
	socket Socket
	reader *bufio.Reader
}

// NewPlainTransport creates the plaintext provider over socket
func NewPlainTransport(socket Socket) *StreamTransport {
	return &StreamTransport{socket: socket}
}

// NewTlsTransport creates the encrypted provider. The handshake runs during
// Connect; config may be nil.
func NewTlsTransport(config *tls.Config, timeout time.Duration) *StreamTransport {
	return &StreamTransport{socket: NewTlsSocket(config, timeout)}
}

// Connect establishes the connection to host:port
func (t *StreamTransport) Connect(host string, port uint16) error {
	if t.reader != nil {
		return httperrors.NewTransportError(httperrors.KindConnectFailed, "already connected", nil)
	}

	if err := t.socket.Connect(host, port); err != nil {
		return err
	}

	t.reader = bufio.NewReaderSize(socketReader{t.socket}, readBufferSize)
	return nil
}

// Send writes all of buf
func (t *StreamTransport) Send(buf []byte) error {
	if t.reader == nil {
		return httperrors.NewTransportError(httperrors.KindSendFailed, "not connected", nil)
	}

	for written := 0; written < len(buf); {
		n, err := t.socket.Write(buf[written:])
		if err != nil {
			if httperrors.KindOf(err) == httperrors.KindNone {
				return httperrors.NewTransportError(httperrors.KindSendFailed, "write failed", err)
			}
			return err
		}
		if n <= 0 {
			return httperrors.NewTransportError(httperrors.KindSendFailed, "short write", nil)
		}
		written += n
	}

	return nil
}

// ReadLine returns the next line with its '\n' terminator
func (t *StreamTransport) ReadLine() (string, error) {
	if t.reader == nil {
		return "", httperrors.NewTransportError(httperrors.KindReadFailed, "not connected", nil)
	}

	line, err := t.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			return "", httperrors.NewTransportError(
				httperrors.KindEndOfStream,
				"stream ended before any bytes of the line were read",
				nil,
			)
		}
	}

	return line, nil
}

// ReadToEnd returns all remaining bytes; the end of the stream is success
func (t *StreamTransport) ReadToEnd() (string, error) {
	if t.reader == nil {
		return "", httperrors.NewTransportError(httperrors.KindReadFailed, "not connected", nil)
	}

	data, err := io.ReadAll(t.reader)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Close closes the underlying socket
func (t *StreamTransport) Close() error {
	t.reader = nil
	return t.socket.Close()
}

// socketReader adapts a Socket to io.Reader, turning the end-of-stream error
// into io.EOF so bufio and io.ReadAll see a normal end of input.
type socketReader struct {
	socket Socket
}

func (r socketReader) Read(p []byte) (int, error) {
	n, err := r.socket.Read(p)
	if err != nil && httperrors.KindOf(err) == httperrors.KindEndOfStream {
		return n, io.EOF
	}
	if err != nil && httperrors.KindOf(err) == httperrors.KindNone {
		return n, httperrors.NewTransportError(httperrors.KindReadFailed, "read failed", err)
	}
	return n, err
}
