package services

import (
	"fmt"

	"github.com/khaynem/WasteWise-Backend/internal/config"
	"github.com/khaynem/WasteWise-Backend/internal/models"
	"github.com/khaynem/WasteWise-Backend/pkg/logger"
	gomail "gopkg.in/gomail.v2"
)

// Sender delivers transactional mail. Stubbed in tests.
type Sender interface {
	Send(to, subject, html string) error
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
	name   string
}

func (s *smtpSender) Send(to, subject, html string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.name)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)
	return s.dialer.DialAndSend(m)
}

// Mailer is the process-wide sender. nil means email is disabled; callers
// treat that as a soft failure and log it.
var Mailer Sender

func InitMailer() {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" {
		logger.Warn().Msg("SMTP not configured, outbound email disabled")
		return
	}
	name := cfg.EmailName
	if name == "" {
		name = "WasteWise"
	}
	Mailer = &smtpSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.EmailFrom,
		name:   name,
	}
}

func sendMail(to, subject, html string) error {
	if Mailer == nil {
		logger.Warn().Str("to", to).Str("subject", subject).Msg("Email not sent: mailer disabled")
		return nil
	}
	return Mailer.Send(to, subject, html)
}

// SendVerificationEmail mails the signup confirmation link.
func SendVerificationEmail(to, username, verifyLink string) error {
	html := fmt.Sprintf(`
		<div style="font-family:'Segoe UI',Arial,sans-serif;background:#F3FFF7;padding:32px;">
		  <div style="max-width:520px;margin:auto;background:#fff;border-radius:16px;padding:32px;">
			<h1 style="color:#047857;">WasteWise</h1>
			<p>Smart waste management for a greener future</p>
			<h2 style="color:#047857;">Verify Your Email</h2>
			<p>Hello <strong>%s</strong>,</p>
			<p>Thanks for signing up to WasteWise. Please confirm your email address to activate your account.</p>
			<p style="text-align:center;margin:24px 0;">
			  <a href="%s" style="background:#047857;color:#fff;text-decoration:none;padding:12px 32px;border-radius:8px;font-weight:600;">Verify Email</a>
			</p>
			<p style="color:#4b5563;font-size:.9rem;">If the button doesn't work, copy this link into your browser:</p>
			<p style="font-size:.75rem;color:#065f46;word-break:break-all;">%s</p>
			<p style="color:#6b7280;font-size:.8rem;">Didn't create this account? You can safely ignore this email.</p>
		  </div>
		</div>`, username, verifyLink, verifyLink)
	return sendMail(to, "WasteWise Email Verification", html)
}

// SendPasswordResetEmail mails the single-use reset link. The link expires
// with the Redis token TTL (one hour).
func SendPasswordResetEmail(to, username, resetLink string) error {
	html := fmt.Sprintf(`
		<div style="font-family:'Segoe UI',Arial,sans-serif;background:#F3FFF7;padding:32px;">
		  <div style="max-width:480px;margin:auto;background:#fff;border-radius:16px;padding:32px;">
			<h1 style="color:#047857;">WasteWise</h1>
			<h2 style="color:#047857;">Password Reset Request</h2>
			<p>Hello <b>%s</b>,</p>
			<p>You requested to reset your password. Click the button below to set a new password:</p>
			<p style="text-align:center;margin:24px 0;">
			  <a href="%s" style="background:#047857;color:#fff;text-decoration:none;padding:12px 32px;border-radius:8px;font-weight:bold;">Reset Password</a>
			</p>
			<p style="color:#666;">This link will expire in <b>1 hour</b>.</p>
			<p style="color:#888;">If you did not request this, you can ignore this email.</p>
		  </div>
		</div>`, username, resetLink)
	return sendMail(to, "WasteWise Password Reset", html)
}

// SendReportResolvedEmail notifies a reporter that their violation report
// was reviewed and resolved.
func SendReportResolvedEmail(to string, report *models.Report) error {
	imageHTML := `<div style="color:#6b7280;font-size:13px;">No image provided.</div>`
	if len(report.Images) > 0 {
		imageHTML = fmt.Sprintf(`<img src="%s" alt="Report Image" style="max-width:100%%;border-radius:8px;border:1px solid #e5e7eb;" />`, report.Images[0])
	}
	osmLink := fmt.Sprintf("https://www.openstreetmap.org/?mlat=%f&mlon=%f#map=16/%f/%f",
		report.Lat, report.Lng, report.Lat, report.Lng)

	html := fmt.Sprintf(`
		<div style="font-family:system-ui,Arial,sans-serif;color:#111827;">
		  <div style="padding:16px;border-radius:12px;border:1px solid #e5e7eb;background:#fff;">
			<h2 style="margin:0 0 10px 0;color:#047857;">WasteWise Report</h2>
			<div style="margin-bottom:10px;"><div style="font-weight:700;color:#047857;">Title</div><div>%s</div></div>
			<div style="margin-bottom:10px;"><div style="font-weight:700;color:#047857;">Description</div><div>%s</div></div>
			<div style="margin-bottom:10px;"><div style="font-weight:700;color:#047857;">Status</div><div>Resolved</div></div>
			<div style="margin:16px 0;"><div style="font-weight:700;color:#047857;">Location</div><a href="%s">View on OpenStreetMap</a></div>
			<div style="margin:16px 0;"><div style="font-weight:700;color:#047857;">Image</div>%s</div>
		  </div>
		</div>`, report.Title, report.Description, osmLink, imageHTML)

	subject := fmt.Sprintf("Your WasteWise Report #%s has been resolved", report.ID)
	return sendMail(to, subject, html)
}

// SendCollectionReminderEmail tells a resident that a waste stream is
// collected in their barangay tomorrow.
func SendCollectionReminderEmail(to, username, barangay, typeName, day string) error {
	html := fmt.Sprintf(`
		<div style="font-family:'Segoe UI',Arial,sans-serif;background:#F3FFF7;padding:32px;">
		  <div style="max-width:480px;margin:auto;background:#fff;border-radius:16px;padding:32px;">
			<h1 style="color:#047857;">WasteWise</h1>
			<h2 style="color:#047857;">Collection Reminder</h2>
			<p>Hello <b>%s</b>,</p>
			<p><b>%s</b> collection in <b>%s</b> is scheduled for <b>%s</b>. Please have your waste sorted and ready.</p>
		  </div>
		</div>`, username, typeName, barangay, day)
	return sendMail(to, "WasteWise Collection Reminder", html)
}
