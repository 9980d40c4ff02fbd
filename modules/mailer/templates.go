package mailer

import (
	"fmt"
)

// PasswordResetEmail renders the HTML body of the reset-link email.
func PasswordResetEmail(resetURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h1>Password reset request</h1>
      <p>We received a request to reset your password. Click the button below to choose a new one:</p>
      <p style="text-align: center;">
        <a href="%[1]s" style="display: inline-block; background: #667eea; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px;">Reset password</a>
      </p>
      <ul>
        <li>This link expires in 1 hour.</li>
        <li>If you did not request a reset, you can ignore this email.</li>
        <li>Do not share this link with anyone.</li>
      </ul>
      <p>If the button does not work, copy this link into your browser:</p>
      <p style="word-break: break-all; background: #f0f0f0; padding: 10px;">%[1]s</p>
      <p>The Enoma team</p>
    </div>
  </body>
</html>`, resetURL)
}

// PasswordChangeNotificationEmail renders the HTML body of the
// password-changed notification.
func PasswordChangeNotificationEmail() string {
	return `<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
      <h1>Your password was changed</h1>
      <p>The password for your Enoma account was just changed.</p>
      <p>If this was not you, contact support immediately.</p>
      <p>The Enoma team</p>
    </div>
  </body>
</html>`
}
