package notify

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/model"
)

func TestMailer_NotConfigured(t *testing.T) {
	m := NewMailer(SMTPConfig{})
	assert.False(t, m.Configured())
	assert.ErrorIs(t, m.ContactReceived(model.Contact{}), ErrNotConfigured)
}

func TestMailer_ComposesMessage(t *testing.T) {
	m := NewMailer(SMTPConfig{User: "me@example.com", Password: "pw", To: "inbox@example.com"})

	var gotAddr string
	var gotTo []string
	var gotMsg string
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	pt := "consulting"
	err := m.ContactReceived(model.Contact{
		ID: "c1", Name: "Eve\r\nBcc: spam@example.com", Email: "eve@example.com", ProjectType: &pt, Message: "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.gmail.com:587", gotAddr)
	assert.Equal(t, []string{"inbox@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Portfolio Contact: Eve  Bcc: spam@example.com\r\n")
	headers, _, _ := strings.Cut(gotMsg, "\r\n\r\n")
	assert.NotContains(t, headers, "\r\nBcc:")
	assert.Contains(t, gotMsg, "Project type: consulting")
	assert.Contains(t, gotMsg, "Reply-To: eve@example.com")
}

func TestMailer_SendFailure(t *testing.T) {
	m := NewMailer(SMTPConfig{User: "u", Password: "p", To: "t"})
	m.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("dial failed") }

	err := m.ContactReceived(model.Contact{ID: "c1"})
	assert.ErrorContains(t, err, "dial failed")
}
