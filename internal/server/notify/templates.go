package notify

import (
	"bytes"
	"html/template"
)

var otpTemplate = template.Must(template.New("otp").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #2563eb; text-align: center;">Portfolio Admin Login</h2>
  <p>Use the following code to complete your login:</p>
  <p style="font-size: 32px; font-weight: bold; letter-spacing: 5px; text-align: center;">{{.Code}}</p>
  <p>This code expires in {{.Minutes}} minutes. If you didn't request it, ignore this email.</p>
</div>`))

var loginAlertTemplate = template.Must(template.New("login").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #dc2626; text-align: center;">New Admin Login</h2>
  <p>A login attempt was made to your portfolio admin panel:</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Time:</strong> {{.Time}}</p>
  <p><strong>IP:</strong> {{.IP}}</p>
  <p>If this was not you, secure your account immediately.</p>
</div>`))

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
