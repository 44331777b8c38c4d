package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorNone ErrorType = iota
	ErrorUrl
	ErrorTransport
	ErrorProtocol
	ErrorInvalidArgument
)

func (t ErrorType) String() string {
	switch t {
	case ErrorUrl:
		return "URL error"
	case ErrorTransport:
		return "Transport error"
	case ErrorProtocol:
		return "Protocol error"
	case ErrorInvalidArgument:
		return "Invalid argument"
	default:
		return "Unknown error"
	}
}

// Kind identifies the specific failure inside a category
type Kind int

const (
	KindNone Kind = iota
	KindMissingScheme
	KindUnsupportedScheme
	KindConnectFailed
	KindSendFailed
	KindEndOfStream
	KindInvalidStatusLine
	KindInvalidStatusCode
	KindReadFailed
	KindInvalidArgument
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMissingScheme:
		return "missing scheme"
	case KindUnsupportedScheme:
		return "unsupported scheme"
	case KindConnectFailed:
		return "connect failed"
	case KindSendFailed:
		return "send failed"
	case KindEndOfStream:
		return "end of stream"
	case KindInvalidStatusLine:
		return "invalid status line"
	case KindInvalidStatusCode:
		return "invalid status code"
	case KindReadFailed:
		return "read failed"
	case KindInvalidArgument:
		return "invalid argument"
	default:
		return fmt.Sprintf("unknown kind %d", int(k))
	}
}

// Type returns the category a kind belongs to.
func (k Kind) Type() ErrorType {
	switch k {
	case KindMissingScheme, KindUnsupportedScheme:
		return ErrorUrl
	case KindConnectFailed, KindSendFailed, KindEndOfStream, KindReadFailed:
		return ErrorTransport
	case KindInvalidStatusLine, KindInvalidStatusCode:
		return ErrorProtocol
	case KindInvalidArgument:
		return ErrorInvalidArgument
	default:
		return ErrorNone
	}
}

// Stage indicates which step of an exchange was running when the error occurred
type Stage string

const (
	StageNone    Stage = ""
	StageConnect Stage = "connect"
	StageSend    Stage = "send"
	StageStatus  Stage = "status"
	StageHeaders Stage = "headers"
	StageBody    Stage = "body"
)

// HttpError is the main error type for the HTTP client
type HttpError struct {
	Type          ErrorType
	Kind          Kind
	Stage         Stage
	Message       string
	Value         string // offending input, e.g. the unsupported scheme
	UnderlyingErr error
}

// Error implements the error interface
func (e *HttpError) Error() string {
	if e == nil {
		return "no error"
	}

	var b strings.Builder
	b.WriteString(e.Type.String())
	b.WriteString(" (")
	b.WriteString(e.Kind.String())
	b.WriteByte(')')

	if e.Stage != StageNone {
		b.WriteString(" during ")
		b.WriteString(string(e.Stage))
	}

	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}

	if e.UnderlyingErr != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.UnderlyingErr.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error for error chain support
func (e *HttpError) Unwrap() error {
	return e.UnderlyingErr
}

// Is reports whether target is an *HttpError of the same kind.
func (e *HttpError) Is(target error) bool {
	t, ok := target.(*HttpError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is; they match any *HttpError of the same kind.
var (
	ErrMissingScheme     = &HttpError{Type: ErrorUrl, Kind: KindMissingScheme}
	ErrUnsupportedScheme = &HttpError{Type: ErrorUrl, Kind: KindUnsupportedScheme}
	ErrConnectFailed     = &HttpError{Type: ErrorTransport, Kind: KindConnectFailed}
	ErrSendFailed        = &HttpError{Type: ErrorTransport, Kind: KindSendFailed}
	ErrEndOfStream       = &HttpError{Type: ErrorTransport, Kind: KindEndOfStream}
	ErrReadFailed        = &HttpError{Type: ErrorTransport, Kind: KindReadFailed}
	ErrInvalidStatusLine = &HttpError{Type: ErrorProtocol, Kind: KindInvalidStatusLine}
	ErrInvalidStatusCode = &HttpError{Type: ErrorProtocol, Kind: KindInvalidStatusCode}
	ErrInvalidArgument   = &HttpError{Type: ErrorInvalidArgument, Kind: KindInvalidArgument}
)

// NewUrlError creates a new URL parsing error
func NewUrlError(kind Kind, message, value string) *HttpError {
	return &HttpError{
		Type:    ErrorUrl,
		Kind:    kind,
		Message: message,
		Value:   value,
	}
}

// NewTransportError creates a new transport error
func NewTransportError(kind Kind, message string, underlying error) *HttpError {
	return &HttpError{
		Type:          ErrorTransport,
		Kind:          kind,
		Message:       message,
		UnderlyingErr: underlying,
	}
}

// NewProtocolError creates a new protocol error
func NewProtocolError(kind Kind, message, value string) *HttpError {
	return &HttpError{
		Type:    ErrorProtocol,
		Kind:    kind,
		Message: message,
		Value:   value,
	}
}

// NewInvalidArgumentError creates a new invalid argument error
func NewInvalidArgumentError(message string) *HttpError {
	return &HttpError{
		Type:    ErrorInvalidArgument,
		Kind:    KindInvalidArgument,
		Message: message,
	}
}

// WithStage tags err with the exchange stage it surfaced in. An *HttpError is
// copied so the caller's value is never mutated; a stage that is already set
// is kept. Any other error is wrapped as a read failure.
func WithStage(err error, stage Stage) error {
	if err == nil {
		return nil
	}

	var he *HttpError
	if errors.As(err, &he) {
		if he.Stage != StageNone {
			return he
		}
		staged := *he
		staged.Stage = stage
		return &staged
	}

	return &HttpError{
		Type:          ErrorTransport,
		Kind:          KindReadFailed,
		Stage:         stage,
		UnderlyingErr: err,
	}
}

// KindOf returns the Kind carried by err, or KindNone.
func KindOf(err error) Kind {
	var he *HttpError
	if errors.As(err, &he) {
		return he.Kind
	}
	return KindNone
}

// StageOf returns the Stage carried by err, or StageNone.
func StageOf(err error) Stage {
	var he *HttpError
	if errors.As(err, &he) {
		return he.Stage
	}
	return StageNone
}
