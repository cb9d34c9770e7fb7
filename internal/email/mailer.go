package email

import (
	"context"
	"fmt"
	"time"
)

// Mailer delivers transactional mail. Implementations exist for AWS SES and
// plain SMTP; the provider is chosen at startup from EMAIL_PROVIDER.
type Mailer interface {
	SendResetCode(ctx context.Context, toAddress, name, code string, expiresAt time.Time) error
}

const resetCodeSubject = "Your Gourmet Gleam password reset code"

// buildResetCodeBodies renders the HTML and plain-text bodies for a
// password-reset email. Both transports share the same content.
func buildResetCodeBodies(name, code string, expiresAt time.Time) (htmlBody, textBody string) {
	minutes := int(time.Until(expiresAt).Round(time.Minute).Minutes())
	if minutes < 1 {
		minutes = 1
	}

	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #f8f9fa; padding: 20px; text-align: center; border-radius: 4px; }
        .code { font-size: 28px; font-weight: bold; letter-spacing: 4px; margin: 20px 0; }
        .warning { background-color: #fff3cd; padding: 10px; border-left: 4px solid #ffc107; margin: 10px 0; }
        .footer { color: #666; font-size: 12px; margin-top: 20px; padding-top: 20px; border-top: 1px solid #eee; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Password Reset</h1>
        </div>
        <p>Hi %s,</p>
        <p>We received a request to reset your Gourmet Gleam password. Enter this code to continue:</p>
        <div class="code">%s</div>
        <div class="warning">
            <strong>Security Notice:</strong> This code expires in %d minutes. Requesting a new code invalidates this one.
        </div>
        <p><strong>Didn't request this?</strong><br>
        You can ignore this email. Your password will not change.</p>
        <div class="footer">
            <p>This is an automated message. Please do not reply to this email.</p>
        </div>
    </div>
</body>
</html>`, name, code, minutes)

	textBody = fmt.Sprintf(`Password Reset

Hi %s,

We received a request to reset your Gourmet Gleam password. Enter this code to continue:

%s

Security Notice: This code expires in %d minutes. Requesting a new code invalidates this one.

Didn't request this?
You can ignore this email. Your password will not change.

This is an automated message. Please do not reply to this email.
`, name, code, minutes)

	return htmlBody, textBody
}
