package mail

import (
	"bytes"
	"html/template"
)

const shareTemplate = `
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN"
        "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html>
    <body>
        <h2>{{.SharerEmail}} shared a document with you</h2>
        <p>{{.SharerEmail}} has shared the document <strong>"{{.Title}}"</strong> with you.</p>
        <p>You have been granted <strong>{{.Permission}}</strong> access to this document.</p>
        <p><a href="{{.ShareURL}}">Open the document</a></p>
        <p>Or copy and paste this link into your browser:</p>
        <p><code>{{.ShareURL}}</code></p>
        <p>This is an automated message. Please do not reply to this email.</p>
    </body>
</html>
`

const resetTemplate = `
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN"
        "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html>
    <body>
        <h2>Reset your password</h2>
        <p>You requested to reset your password for your BockDocs account.</p>
        <p><a href="{{.ResetURL}}">Reset password</a></p>
        <p>Or copy and paste this link into your browser:</p>
        <p><code>{{.ResetURL}}</code></p>
        <p><strong>This link will expire in 1 hour.</strong></p>
        <p>If you didn't request this password reset, please ignore this email.
        Your password will remain unchanged.</p>
    </body>
</html>
`

type shareData struct {
	SharerEmail string
	Title       string
	ShareURL    string
	Permission  string
}

type resetData struct {
	ResetURL string
}

var (
	shareTmpl = template.Must(template.New("share").Parse(shareTemplate))
	resetTmpl = template.Must(template.New("reset").Parse(resetTemplate))
)

func renderShare(data shareData) (string, error) {
	buf := new(bytes.Buffer)
	if err := shareTmpl.Execute(buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderReset(data resetData) (string, error) {
	buf := new(bytes.Buffer)
	if err := resetTmpl.Execute(buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
