package mailer

import (
	"bytes"
	"io"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/pkg/errors"
)

// compose renders msg as a single-part text/html RFC 5322 message.
func compose(from, to *mail.Address, msg Message, now time.Time) ([]byte, error) {
	var h mail.Header
	h.SetDate(now)
	h.SetAddressList("From", []*mail.Address{from})
	h.SetAddressList("To", []*mail.Address{to})
	h.SetSubject(msg.Subject)
	h.SetContentType("text/html", map[string]string{"charset": "utf-8"})
	h.Set("Content-Transfer-Encoding", "quoted-printable")
	if err := h.GenerateMessageID(); err != nil {
		return nil, errors.Wrap(err, "generate message id")
	}

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, errors.Wrap(err, "create message writer")
	}
	if _, err := io.WriteString(w, msg.HTMLBody); err != nil {
		return nil, errors.Wrap(err, "write body")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "close message writer")
	}
	return buf.Bytes(), nil
}
