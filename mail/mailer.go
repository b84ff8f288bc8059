package mail

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/BOCK-CHAIN/BockDocsBackend/log"
)

// sendBudget bounds how long a dispatch may take. Mail is a best-effort side
// effect: the triggering request must get its response even when the SMTP
// server hangs.
const sendBudget = 10 * time.Second

type Status string

const (
	StatusSent          Status = "sent"
	StatusNotConfigured Status = "not_configured"
	StatusFailed        Status = "failed"
)

// Result reports what happened to a dispatch attempt. Failures are carried
// back to the caller instead of being swallowed, so the primary operation can
// succeed while still telling the user the notification did not go out.
type Result struct {
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func Sent() Result          { return Result{Status: StatusSent} }
func NotConfigured() Result { return Result{Status: StatusNotConfigured} }
func Failed(reason string) Result {
	return Result{Status: StatusFailed, Reason: reason}
}

type Configuration struct {
	Enabled  bool   `toml:"enabled"`
	From     string `toml:"from"`
	Server   string `toml:"server"`
	Addr     string `toml:"addr"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type Sender struct {
	cfg    Configuration
	logger log.Logger

	// send is swapped in tests
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSender(cfg Configuration, logger log.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send:   smtp.SendMail,
	}
}

// SendShareLink mails a share invitation. The sharer is identified by email
// address, accounts carry no display name.
func (s *Sender) SendShareLink(recipient, sharerEmail, title, shareURL, permission string) Result {
	body, err := renderShare(shareData{
		SharerEmail: sharerEmail,
		Title:       title,
		ShareURL:    shareURL,
		Permission:  permission,
	})
	if err != nil {
		return Failed(err.Error())
	}

	subject := fmt.Sprintf("%s shared %q with you", sharerEmail, title)
	return s.dispatch(recipient, subject, body)
}

func (s *Sender) SendPasswordReset(recipient, resetURL string) Result {
	body, err := renderReset(resetData{ResetURL: resetURL})
	if err != nil {
		return Failed(err.Error())
	}

	return s.dispatch(recipient, "Reset your BockDocs password", body)
}

func (s *Sender) dispatch(recipient, subject, body string) Result {
	if !s.cfg.Enabled || s.cfg.User == "" || s.cfg.Password == "" {
		s.logger.Warnf("mail not configured, skipping %q to %s", subject, recipient)
		return NotConfigured()
	}

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Server)

	headers := strings.Join([]string{
		fmt.Sprintf("From: \"BockDocs\" <%s>", s.cfg.From),
		fmt.Sprintf("To: %s", recipient),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-version: 1.0;",
		"Content-Type: text/html; charset=\"UTF-8\";",
	}, "\r\n")
	msg := []byte(headers + "\r\n\r\n" + body)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.send(s.cfg.Addr, auth, s.cfg.From, []string{recipient}, msg)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.logger.Errorf("could not send %q to %s: %v", subject, recipient, err)
			return Failed(err.Error())
		}
		return Sent()
	case <-time.After(sendBudget):
		s.logger.Errorf("sending %q to %s timed out", subject, recipient)
		return Failed("timed out")
	}
}
