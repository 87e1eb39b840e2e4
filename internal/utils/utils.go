package utils

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ShouldRetry reports whether a model call failed transiently: rate limits,
// 5xx responses, timeouts or a dropped connection.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	// Retry on transient errors like rate limits or server errors
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "rate limit") ||
		strings.Contains(errMsg, "500 internal server error") ||
		strings.Contains(errMsg, "502 bad gateway") ||
		strings.Contains(errMsg, "503 service unavailable") ||
		strings.Contains(errMsg, "504 gateway timeout") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "connection reset by peer") ||
		strings.Contains(errMsg, "context deadline exceeded") {
		return true
	}
	var openAIErr *openai.APIError
	if errors.As(err, &openAIErr) {
		if openAIErr.HTTPStatusCode >= 500 || openAIErr.HTTPStatusCode == 429 {
			return true
		}
	}
	return false
}

// SanitizeError hides provider messages that mention credentials.
func SanitizeError(err error, generic string) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "api") && strings.Contains(msg, "key") {
		return generic
	}
	return err.Error()
}

var allowedExtensions = map[string]bool{
	"html": true, "css": true, "js": true, "txt": true, "json": true,
	"svg": true, "png": true, "jpg": true, "jpeg": true, "gif": true,
}

// DetermineFileType returns the stored file type: the lower-cased extension
// without the dot ("html", "css", "png", ...), or "" when there is none.
func DetermineFileType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return strings.TrimPrefix(ext, ".")
}

// AllowedFile reports whether the filename carries an accepted extension.
func AllowedFile(filename string) bool {
	return allowedExtensions[DetermineFileType(filename)]
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename strips directories and any character outside [A-Za-z0-9_.-].
func SecureFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, ".")
	return name
}

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	spaceRun     = regexp.MustCompile(`\s+`)
	dashRun      = regexp.MustCompile(`-+`)
)

// ProjectNameFromPrompt turns a prompt into a short kebab-case project name.
func ProjectNameFromPrompt(prompt string) string {
	runes := []rune(prompt)
	if len(runes) > 50 {
		runes = runes[:50]
	}
	name := strings.ToLower(string(runes))
	name = nonSlugChars.ReplaceAllString(name, "")
	name = spaceRun.ReplaceAllString(strings.TrimSpace(name), "-")
	name = dashRun.ReplaceAllString(name, "-")
	if len(name) > 30 {
		name = name[:30]
	}
	name = strings.Trim(name, "-")
	if name == "" {
		return "untitled-project"
	}
	return name
}

// ContentType maps a stored filename to the Content-Type used for previews.
func ContentType(filename string) string {
	switch DetermineFileType(filename) {
	case "css":
		return "text/css; charset=utf-8"
	case "js":
		return "application/javascript"
	case "json":
		return "application/json"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "svg":
		return "image/svg+xml"
	case "txt":
		return "text/plain; charset=utf-8"
	default:
		return "text/html; charset=utf-8"
	}
}
