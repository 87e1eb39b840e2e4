package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func TestShouldRetry(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("429 rate limit reached"), true},
		{errors.New("context deadline exceeded"), true},
		{errors.New("invalid request"), false},
		{fmt.Errorf("wrapped: %w", &openai.APIError{HTTPStatusCode: 503}), true},
		{fmt.Errorf("wrapped: %w", &openai.APIError{HTTPStatusCode: 400}), false},
	}
	for _, c := range cases {
		if got := ShouldRetry(c.err); got != c.want {
			t.Errorf("ShouldRetry(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}

func TestSanitizeError(t *testing.T) {
	if got := SanitizeError(errors.New("invalid API key sk-123"), "AI service error"); got != "AI service error" {
		t.Errorf("expected generic message, got %q", got)
	}
	if got := SanitizeError(errors.New("upstream closed"), "AI service error"); got != "upstream closed" {
		t.Errorf("expected original message, got %q", got)
	}
}

func TestAllowedFile(t *testing.T) {
	for _, name := range []string{"index.html", "logo.PNG", "photo.jpeg", "data.json", "icon.svg"} {
		if !AllowedFile(name) {
			t.Errorf("expected %q to be allowed", name)
		}
	}
	for _, name := range []string{"run.sh", "noext", "archive.zip", "image.webp"} {
		if AllowedFile(name) {
			t.Errorf("expected %q to be rejected", name)
		}
	}
}

func TestSecureFilename(t *testing.T) {
	cases := map[string]string{
		"../../etc/passwd":    "passwd",
		"my photo.png":        "my_photo.png",
		`C:\Users\me\pic.jpg`: "pic.jpg",
		"hé<llo>.gif":         "hllo.gif",
		".hidden.png":         "hidden.png",
	}
	for in, want := range cases {
		if got := SecureFilename(in); got != want {
			t.Errorf("SecureFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProjectNameFromPrompt(t *testing.T) {
	if got := ProjectNameFromPrompt("Build me a Bakery site!!"); got != "build-me-a-bakery-site" {
		t.Errorf("unexpected name %q", got)
	}
	if got := ProjectNameFromPrompt("!!!"); got != "untitled-project" {
		t.Errorf("expected fallback name, got %q", got)
	}
	long := ProjectNameFromPrompt("an online store selling handmade ceramic mugs and plates")
	if len(long) > 30 {
		t.Errorf("name longer than 30 chars: %q", long)
	}
}

func TestContentType(t *testing.T) {
	if got := ContentType("styles.css"); got != "text/css; charset=utf-8" {
		t.Errorf("unexpected css content type %q", got)
	}
	if got := ContentType("a.JPG"); got != "image/jpeg" {
		t.Errorf("unexpected jpg content type %q", got)
	}
	if got := ContentType("about.html"); got != "text/html; charset=utf-8" {
		t.Errorf("unexpected html content type %q", got)
	}
}
