package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	httperrors "github.com/genryu22/learn-browser/errors"
	"github.com/genryu22/learn-browser/transport"
	"github.com/genryu22/learn-browser/url"
)

const headerTerminator = "\r\n"

// Http1Protocol performs a single HTTP/1.0 GET exchange over a transport
type Http1Protocol struct {
	transport transport.Transport
	logger    *zap.Logger
}

// NewHttp1Protocol creates a new protocol handler. A nil logger discards output.
func NewHttp1Protocol(t transport.Transport, logger *zap.Logger) *Http1Protocol {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Http1Protocol{
		transport: t,
		logger:    logger,
	}
}

// BuildRequest formats the request bytes sent for u
func BuildRequest(u url.Url) []byte {
	return []byte(fmt.Sprintf("GET %s HTTP/1.0\r\nHost: %s\r\n\r\n", u.Path, u.Host))
}

// Request connects to u.Host on port, sends a GET for u.Path and reads the
// whole response. The transport is closed before returning. Every failure is
// terminal and carries the stage it happened in; no partial response is
// ever returned.
func (p *Http1Protocol) Request(u url.Url, port uint16) (*HttpResponse, error) {
	defer p.transport.Close()

	log := p.logger.With(zap.String("host", u.Host), zap.Uint16("port", port), zap.String("path", u.Path))

	if err := p.transport.Connect(u.Host, port); err != nil {
		return nil, httperrors.WithStage(err, httperrors.StageConnect)
	}
	log.Debug("connected")

	if err := p.transport.Send(BuildRequest(u)); err != nil {
		return nil, httperrors.WithStage(err, httperrors.StageSend)
	}
	log.Debug("request sent")

	statusLine, err := p.transport.ReadLine()
	if err != nil {
		return nil, httperrors.WithStage(err, httperrors.StageStatus)
	}

	version, status, explanation, err := ParseStatusLine(statusLine)
	if err != nil {
		return nil, httperrors.WithStage(err, httperrors.StageStatus)
	}
	log.Debug("status line parsed", zap.String("version", version), zap.Uint16("status", status))

	headers, err := p.readHeaders()
	if err != nil {
		return nil, httperrors.WithStage(err, httperrors.StageHeaders)
	}
	log.Debug("headers parsed", zap.Int("count", len(headers)))

	body, err := p.transport.ReadToEnd()
	if err != nil {
		return nil, httperrors.WithStage(err, httperrors.StageBody)
	}
	log.Debug("body read", zap.Int("bytes", len(body)))

	return &HttpResponse{
		Version:     version,
		Status:      status,
		Explanation: explanation,
		Headers:     headers,
		Body:        body,
	}, nil
}

// readHeaders reads header lines until the blank separator. The separator
// must be seen: running out of stream first is an error.
func (p *Http1Protocol) readHeaders() (map[string]string, error) {
	headers := make(map[string]string)
	for {
		line, err := p.transport.ReadLine()
		if err != nil {
			return nil, err
		}
		if line == headerTerminator {
			return headers, nil
		}

		name, value, ok := ParseHeaderLine(line)
		if !ok {
			p.logger.Debug("ignoring header line without colon", zap.String("line", line))
			continue
		}
		headers[name] = value
	}
}

// ParseStatusLine splits a status line such as "HTTP/1.0 404 Not Found".
// The line terminator, if any, is dropped first. Multi-word reasons are
// kept intact.
func ParseStatusLine(line string) (version string, status uint16, explanation string, err error) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	parts := strings.Split(line, " ")
	if len(parts) < 3 {
		return "", 0, "", httperrors.NewProtocolError(
			httperrors.KindInvalidStatusLine,
			fmt.Sprintf("invalid status line: %q", line),
			line,
		)
	}

	code, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil {
		return "", 0, "", httperrors.NewProtocolError(
			httperrors.KindInvalidStatusCode,
			fmt.Sprintf("invalid status code: %s", parts[1]),
			parts[1],
		)
	}

	return parts[0], uint16(code), strings.Join(parts[2:], " "), nil
}

// ParseHeaderLine splits a header line at its first colon. The name is
// trimmed and lower-cased, the value trimmed. ok is false when the line has
// no colon.
func ParseHeaderLine(line string) (name, value string, ok bool) {
	rawName, rawValue, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	return strings.ToLower(strings.TrimSpace(rawName)), strings.TrimSpace(rawValue), true
}
