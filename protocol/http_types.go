package protocol

import "strings"

// HttpResponse represents a fully read HTTP response
type HttpResponse struct {
	Version     string
	Status      uint16
	Explanation string
	// Headers maps lower-cased header names to their trimmed values.
	// The last occurrence of a repeated name wins.
	Headers map[string]string
	Body    string
}

// Header looks up a header by name, ignoring case
func (r *HttpResponse) Header(name string) (string, bool) {
	value, ok := r.Headers[strings.ToLower(strings.TrimSpace(name))]
	return value, ok
}
