package http

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/brendan.keane/toastsms/internal/urlformat"
)

// RequestIDPattern constrains the request id accepted from callers
var RequestIDPattern = regexp.MustCompile(`^\d+\w+$`)

// MessageRequest carries the caller-supplied inputs of one lookup
type MessageRequest struct {
	AppKey       string
	SecretKey    string
	RequestID    string
	RecipientSeq int
}

// Options binds the request to the endpoint template's fields
func (r MessageRequest) Options(version string) urlformat.GetMessageOptions {
	return urlformat.GetMessageOptions{
		Version:      version,
		AppKey:       r.AppKey,
		RequestID:    r.RequestID,
		RecipientSeq: r.RecipientSeq,
	}
}

// ParseRecipientSeq reads a recipient sequence number. Surrounding whitespace is
// ignored; absent, malformed or out of 32-bit range values mean 0
func ParseRecipientSeq(raw string) int {
	seq, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0
	}
	return int(seq)
}

// Message is a successful upstream response, relayed as-is
type Message struct {
	StatusCode  int
	ContentType string
	Header      http.Header
	Body        []byte
	URL         string
	Duration    time.Duration
}
