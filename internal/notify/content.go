package notify

import (
	"fmt"
	"html/template"
	"strings"

	"blogapp/internal/model"
)

// contentData feeds the per-kind body templates.
type contentData struct {
	Name    string
	Title   string
	PostURL string
}

const footer = `<hr style="border:none;border-top:1px solid #eee;margin:20px 0;">
<p style="color:#666;font-size:12px;">This is an automated email. Please do not reply.</p>`

var bodyTemplates = map[model.EventKind]*template.Template{
	model.EventUserBanned: mustBody("user_banned", `
<h2 style="color:#dc3545;">Your Account Has Been Banned</h2>
<p>Hello {{.Name}},</p>
<p>Unfortunately your account has been banned. You can no longer sign in or use the platform.</p>
<p>If you have questions about this decision, please contact an administrator.</p>`),

	model.EventUserSuspended: mustBody("user_suspended", `
<h2 style="color:#ffc107;">Your Account Has Been Suspended</h2>
<p>Hello {{.Name}},</p>
<p>Your account has been temporarily suspended for 5 days. You cannot sign in or use the platform during this period.</p>
<p>If you have questions about this decision, please contact an administrator.</p>`),

	model.EventPostApproved: mustBody("post_approved", `
<h2 style="color:#28a745;">Your Post Has Been Approved</h2>
<p>Hello {{.Name}},</p>
<p>Great news! Your post <strong>&quot;{{.Title}}&quot;</strong> has been approved and published.</p>
<p style="text-align:center;margin:30px 0;">
<a href="{{.PostURL}}" style="background-color:#28a745;color:white;padding:12px 24px;text-decoration:none;border-radius:5px;display:inline-block;">View Post</a>
</p>`),

	model.EventPostUnpublished: mustBody("post_unpublished", `
<h2 style="color:#ffc107;">Your Post Has Been Unpublished</h2>
<p>Hello {{.Name}},</p>
<p>Your post <strong>&quot;{{.Title}}&quot;</strong> has been unpublished and is back in draft state.</p>
<p>You can edit it and resubmit it for approval.</p>`),

	model.EventPostDeleted: mustBody("post_deleted", `
<h2 style="color:#dc3545;">Your Post Has Been Deleted</h2>
<p>Hello {{.Name}},</p>
<p>Your post <strong>&quot;{{.Title}}&quot;</strong> has been permanently deleted by an administrator.</p>
<p>This action cannot be undone. The post is no longer visible on the platform.</p>`),
}

var subjects = map[model.EventKind]string{
	model.EventUserBanned:      "Your Account Has Been Banned",
	model.EventUserSuspended:   "Your Account Has Been Suspended",
	model.EventPostApproved:    "Your Post Has Been Approved",
	model.EventPostUnpublished: "Your Post Has Been Unpublished",
	model.EventPostDeleted:     "Your Post Has Been Deleted",
}

func mustBody(name, inner string) *template.Template {
	page := `<html>
<body style="font-family:Arial,sans-serif;line-height:1.6;color:#333;">
<div style="max-width:600px;margin:0 auto;padding:20px;">` + inner + footer + `</div>
</body>
</html>`
	return template.Must(template.New(name).Parse(page))
}

// renderContent produces the subject and HTML body for one event.
func renderContent(kind model.EventKind, data contentData) (subject, body string, err error) {
	tmpl, ok := bodyTemplates[kind]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnknownEventKind, kind)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", "", fmt.Errorf("notify: render %s: %w", kind, err)
	}
	return subjects[kind], sb.String(), nil
}
