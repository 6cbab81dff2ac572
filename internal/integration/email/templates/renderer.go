// Package templates renders the embedded email templates.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

// PasswordResetData feeds the password_reset template pair.
type PasswordResetData struct {
	UserName  string
	ResetURL  string
	ExpiresIn string
}

// Renderer renders the HTML and plain-text variants of each email.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer parses all embedded templates once at startup.
func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse HTML email templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text email templates: %w", err)
	}
	return &Renderer{html: html, text: text}, nil
}

// Render produces both variants of the named template. A missing text
// variant is not an error; the HTML body is returned alone.
func (r *Renderer) Render(name string, data interface{}) (html, text string, err error) {
	var htmlBuf bytes.Buffer
	if err := r.html.ExecuteTemplate(&htmlBuf, name+".html", data); err != nil {
		return "", "", fmt.Errorf("render HTML template %s: %w", name, err)
	}

	var textBuf bytes.Buffer
	if err := r.text.ExecuteTemplate(&textBuf, name+".txt", data); err != nil {
		return htmlBuf.String(), "", nil
	}
	return htmlBuf.String(), textBuf.String(), nil
}
