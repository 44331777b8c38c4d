package transport

// Transport is the connection capability the request engine drives.
// Implementations are not safe for concurrent use; one exchange owns one
// Transport for its whole lifetime.
type Transport interface {
	// Connect establishes the connection to host:port.
	// Implementations may only support being called once.
	Connect(host string, port uint16) error

	// Send writes every byte of buf or returns an error.
	Send(buf []byte) error

	// ReadLine returns the next line including its '\n' terminator.
	// If the stream ends after at least one byte the partial line is
	// returned without error; if it ends before any byte the error has
	// kind KindEndOfStream.
	ReadLine() (string, error)

	// ReadToEnd returns everything up to the end of the stream.
	// Reaching the end of the stream is not an error.
	ReadToEnd() (string, error)

	// Close closes the connection. It is safe to call more than once.
	Close() error
}

// Socket defines the raw byte-stream operations a Transport is built on.
// Implementations include TCP, Unix domain, TLS and io_uring sockets.
type Socket interface {
	// Connect establishes a connection to the specified host and port.
	// For Unix sockets the configured path is used and both are ignored.
	Connect(host string, port uint16) error

	// Write sends data to the connected peer.
	// Returns the number of bytes written or an error.
	Write(buf []byte) (int, error)

	// Read receives data from the connected peer.
	// A closed peer is reported as an error of kind KindEndOfStream.
	Read(buf []byte) (int, error)

	// Close closes the connection.
	Close() error
}
