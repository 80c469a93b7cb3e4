package email

import "fmt"

func verificationText(name, code string) string {
	return fmt.Sprintf("Hello %s!\n\nYour verification code is: %s\n\nThis code will expire in 10 minutes.\n\nIf you didn't create an account with us, please ignore this email.", name, code)
}

func verificationHTML(name, code string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: #4F46E5; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0;">
      <h1>Email Verification</h1>
    </div>
    <div style="background: #f9fafb; padding: 30px; border-radius: 0 0 5px 5px;">
      <h2>Hello %s!</h2>
      <p>Thank you for registering with Task Manager. To complete your registration, please verify your email address.</p>
      <div style="background: white; border: 2px solid #4F46E5; border-radius: 8px; padding: 20px; text-align: center; margin: 20px 0;">
        <p style="margin: 0; font-size: 14px; color: #6b7280;">Your verification code is:</p>
        <div style="font-size: 32px; font-weight: bold; color: #4F46E5; letter-spacing: 5px;">%s</div>
      </div>
      <p><strong>This code will expire in 10 minutes.</strong></p>
      <p>If you didn't create an account with us, please ignore this email.</p>
    </div>
  </div>
</body>
</html>`, name, code)
}
