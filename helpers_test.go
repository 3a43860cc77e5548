package site

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"  Reducing Chronic Absenteeism!  ", "reducing-chronic-absenteeism"},
		{"K-12 & Districts", "k-12-districts"},
		{"---", ""},
		{"2024 Recap", "2024-recap"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://brainbridge.cloud", nil, "https://brainbridge.cloud"},
		{"https://brainbridge.cloud", []string{"blog"}, "https://brainbridge.cloud/blog/"},
		{"https://brainbridge.cloud", []string{"blog", "my-post"}, "https://brainbridge.cloud/blog/my-post/"},
		{"https://brainbridge.cloud/site", []string{"contact"}, "https://brainbridge.cloud/site/contact/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.expected {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
		}
	}
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		base, ref, expected string
	}{
		{"https://brainbridge.cloud", "/og-image.png", "https://brainbridge.cloud/og-image.png"},
		{"https://brainbridge.cloud", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"https://brainbridge.cloud", "", ""},
	}
	for _, tt := range tests {
		if got := AbsoluteURL(tt.base, tt.ref); got != tt.expected {
			t.Errorf("AbsoluteURL(%q, %q) = %q, want %q", tt.base, tt.ref, got, tt.expected)
		}
	}
}
