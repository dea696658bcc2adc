package web

import (
	"html/template"
	"path/filepath"
)

// parseTemplates finds and parses the HTML templates.
func parseTemplates() (*template.Template, error) {
	// In a real application, you would embed the templates into the binary.
	// For development, we read them from the filesystem.
	templatePath := "."

	tmpl, err := template.ParseFiles(
		filepath.Join(templatePath, "internal", "web", "index.html"),
		filepath.Join(templatePath, "internal", "web", "docs.html"),
	)
	if err != nil {
		return nil, err
	}

	return tmpl, nil
}
