package notify

import (
	"strings"
	"testing"
)

func TestFormatMessage(t *testing.T) {
	msg := string(formatMessage("votes@campus.edu", "jane.doe@campus.edu", "Vote Confirmation", "Thank you."))

	wantHeaders := []string{
		"From: votes@campus.edu\r\n",
		"To: jane.doe@campus.edu\r\n",
		"Subject: Vote Confirmation\r\n",
		"Content-Type: text/plain; charset=UTF-8\r\n",
	}
	for _, h := range wantHeaders {
		if !strings.Contains(msg, h) {
			t.Errorf("formatMessage() missing header %q", h)
		}
	}

	if !strings.HasSuffix(msg, "\r\n\r\nThank you.") {
		t.Errorf("formatMessage() body not separated from headers: %q", msg)
	}
}

func TestFormatMessageStripsHeaderInjection(t *testing.T) {
	msg := string(formatMessage("votes@campus.edu", "jane@campus.edu",
		"Hello\r\nBcc: everyone@campus.edu", "body"))

	if strings.Contains(msg, "Bcc:") {
		t.Error("formatMessage() allowed header injection through the subject")
	}
}
