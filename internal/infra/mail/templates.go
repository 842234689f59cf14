package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var recoveryTemplates = map[string]struct {
	file    string
	subject string
}{
	"reminder": {"templates/reminder.html", "Your bin clean is one click away"},
	"discount": {"templates/discount.html", "10% off your first bin clean"},
	"final":    {"templates/final.html", "Last chance to grab your slot"},
}

const confirmationTemplate = "templates/booking_confirmation.html"

func IsValidRecoveryTemplate(name string) bool {
	_, ok := recoveryTemplates[name]
	return ok
}

func renderFile(file string, data interface{}) (string, error) {
	t, err := template.ParseFS(templateFS, file)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template %s: %w", file, err)
	}
	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to render email template %s: %w", file, err)
	}
	return body.String(), nil
}

// InjectTrackingPixel places an invisible 1x1 image just before the closing
// body tag. HTML without a </body> gets the pixel appended at the end so an
// odd template still tracks.
func InjectTrackingPixel(html, pixelURL string) string {
	pixel := fmt.Sprintf(`<img src="%s" width="1" height="1" style="display:none" alt="">`, pixelURL)
	if idx := strings.LastIndex(html, "</body>"); idx >= 0 {
		return html[:idx] + pixel + html[idx:]
	}
	return html + pixel
}
