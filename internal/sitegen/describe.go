package sitegen

import (
	"bytes"
	"log"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	descriptionRenderer  = goldmark.New(goldmark.WithExtensions(extension.GFM))
	descriptionSanitizer = bluemonday.UGCPolicy()
)

// RenderDescription converts the model's markdown change notes to sanitized HTML.
func RenderDescription(md string) string {
	var buf bytes.Buffer
	if err := descriptionRenderer.Convert([]byte(md), &buf); err != nil {
		log.Printf("WARN: rendering description markdown: %v", err)
		return ""
	}
	return descriptionSanitizer.Sanitize(buf.String())
}
