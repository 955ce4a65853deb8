package delivery

import (
	"fmt"
	"html/template"
	"strings"

	"blogapp/internal/model"
)

// excerptLimit caps the content preview embedded in the email, counted
// in runes so multi-byte content is never split.
const excerptLimit = 200

var newPostTemplate = template.Must(template.New("new_post").Parse(`<html>
<body style="font-family:Arial,sans-serif;padding:20px;background-color:#f5f5f5;">
<div style="max-width:600px;margin:0 auto;background-color:white;padding:30px;border-radius:10px;">
<h2 style="color:#333;">Hello {{.FollowerName}}!</h2>
<p style="color:#666;line-height:1.6;"><strong>{{.AuthorName}}</strong>, whom you follow, published a new post:</p>
<div style="background-color:#f8f9fa;padding:20px;border-radius:5px;margin:20px 0;">
<h3 style="color:#007bff;margin-top:0;">{{.Title}}</h3>
<p style="color:#555;">{{.Excerpt}}</p>
</div>
<div style="text-align:center;margin:30px 0;">
<a href="{{.PostURL}}" style="background-color:#007bff;color:white;padding:12px 30px;text-decoration:none;border-radius:5px;display:inline-block;font-weight:bold;">Read Post</a>
</div>
<hr style="border:none;border-top:1px solid #eee;margin:30px 0;">
<p style="color:#999;font-size:12px;text-align:center;margin:0;">This email was sent by BlogApp.</p>
<p style="color:#999;font-size:11px;text-align:center;margin-top:10px;"><a href="{{.PostURL}}" style="color:#999;">{{.PostURL}}</a></p>
</div>
</body>
</html>`))

type newPostData struct {
	FollowerName string
	AuthorName   string
	Title        string
	Excerpt      string
	PostURL      string
}

// renderNewPostEmail builds the subject and body of a follower
// notification for one approved post.
func renderNewPostEmail(post *model.Post, follower *model.User, baseURL string) (subject, body string, err error) {
	authorName := ""
	if post.User != nil {
		authorName = post.User.FullName()
	}

	data := newPostData{
		FollowerName: follower.FirstName,
		AuthorName:   authorName,
		Title:        post.Title,
		Excerpt:      excerpt(post.Content),
		PostURL:      fmt.Sprintf("%s/posts/%d", baseURL, post.ID),
	}

	var sb strings.Builder
	if err := newPostTemplate.Execute(&sb, data); err != nil {
		return "", "", fmt.Errorf("delivery: render email: %w", err)
	}
	return "New Blog Post: " + post.Title, sb.String(), nil
}

func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLimit {
		return content
	}
	return string(runes[:excerptLimit]) + "..."
}
