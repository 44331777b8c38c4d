//go:build !linux

package transport

import (
	httperrors "github.com/genryu22/learn-browser/errors"
)

var errUringUnsupported = httperrors.NewTransportError(
	httperrors.KindConnectFailed,
	"io_uring is only available on linux",
	nil,
)

// UringSocket is unavailable off linux; construction always fails.
type UringSocket struct{ unsupportedSocket }

// NewUringSocket always fails on this platform
func NewUringSocket() (*UringSocket, error) {
	return nil, errUringUnsupported
}

// UringSocketV2 is unavailable off linux; construction always fails.
type UringSocketV2 struct{ unsupportedSocket }

// NewUringSocketV2 always fails on this platform
func NewUringSocketV2() (*UringSocketV2, error) {
	return nil, errUringUnsupported
}

type unsupportedSocket struct{}

func (unsupportedSocket) Connect(host string, port uint16) error { return errUringUnsupported }
func (unsupportedSocket) Write(buf []byte) (int, error)          { return 0, errUringUnsupported }
func (unsupportedSocket) Read(buf []byte) (int, error)           { return 0, errUringUnsupported }
func (unsupportedSocket) Close() error                           { return nil }
