package content

import (
	"net/mail"
	"net/url"
	"strings"
)

// CanTransition reports whether a message may move from one status to
// another. Messages only move forward (unread, read, replied) except that
// any message may be marked unread again. Staying put is always allowed.
func CanTransition(from, to MessageStatus) bool {
	if from == to || to == MessageUnread {
		return true
	}
	switch from {
	case MessageUnread:
		return to == MessageRead || to == MessageReplied
	case MessageRead:
		return to == MessageReplied
	}
	return false
}

// ReplyLink builds the mailto: URL that opens a reply to m with body
// prefilled in the visitor's mail client.
func ReplyLink(m ContactMessage, body string) string {
	subject := m.SubjectText()
	if subject == "" {
		subject = "Your message"
	}
	q := "subject=" + mailtoEscape("Re: "+subject) + "&body=" + mailtoEscape(body)
	u := url.URL{Scheme: "mailto", Opaque: mailtoAddress(m.Email), RawQuery: q}
	return u.String()
}

// mailtoEscape percent-encodes s for a mailto header value; spaces must be
// %20 there, not '+'.
// mailtoAddress percent-escapes the characters, '?' and '#' among them,
// that would end the address part of a mailto: URL.
func mailtoAddress(addr string) string {
	return url.PathEscape(addr)
}

func mailtoEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func validEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
