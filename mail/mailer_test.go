package mail

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BOCK-CHAIN/BockDocsBackend/log"
)

func TestSender_NotConfigured(t *testing.T) {
	sender := NewSender(Configuration{Enabled: true}, log.New("test"))
	sender.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send should not be attempted without credentials")
		return nil
	}

	res := sender.SendShareLink("to@mail.com", "alice@bock.com", "Plan", "http://host/#/shared/abc", "view")
	assert.Equal(t, StatusNotConfigured, res.Status)
}

func TestSender_Sent(t *testing.T) {
	cfg := Configuration{
		Enabled:  true,
		From:     "noreply@bockdocs.com",
		Server:   "smtp.mail.com",
		Addr:     "smtp.mail.com:587",
		User:     "user",
		Password: "password",
	}

	var sentTo []string
	sender := NewSender(cfg, log.New("test"))
	sender.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		sentTo = to
		assert.Equal(t, cfg.Addr, addr)
		assert.Equal(t, cfg.From, from)
		assert.Contains(t, string(msg), "http://host/#/shared/abc")
		assert.Contains(t, string(msg), "alice@bock.com shared a document")
		return nil
	}

	res := sender.SendShareLink("to@mail.com", "alice@bock.com", "Plan", "http://host/#/shared/abc", "edit")
	assert.Equal(t, StatusSent, res.Status)
	assert.Equal(t, []string{"to@mail.com"}, sentTo)
}

func TestSender_Failed(t *testing.T) {
	cfg := Configuration{Enabled: true, User: "user", Password: "password"}
	sender := NewSender(cfg, log.New("test"))
	sender.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	res := sender.SendPasswordReset("to@mail.com", "http://host/#/reset-password?token=x")
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, "connection refused", res.Reason)
}
