package urlmatch

import "testing"

func TestAllowedHost(t *testing.T) {
	tests := []struct {
		name      string
		configURL string
		expected  string
	}{
		{name: "https with path", configURL: "https://example.com/app/index.html", expected: "example.com"},
		{name: "http bare", configURL: "http://example.com", expected: "example.com"},
		{name: "trailing slash", configURL: "https://example.com/", expected: "example.com"},
		{name: "port kept", configURL: "http://localhost:8080/x", expected: "localhost:8080"},
		{name: "no scheme", configURL: "example.com/app", expected: ""},
		{name: "other scheme", configURL: "ftp://example.com", expected: ""},
		{name: "empty", configURL: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllowedHost(tt.configURL); got != tt.expected {
				t.Errorf("AllowedHost(%q) = %q, want %q", tt.configURL, got, tt.expected)
			}
		})
	}
}

func TestFindAllowedURL(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		configURL string
		expected  string
		found     bool
	}{
		{
			name:      "matching url",
			args:      []string{"exe", "https://example.com/page", "irrelevant"},
			configURL: "https://example.com",
			expected:  "https://example.com/page",
			found:     true,
		},
		{
			name:      "foreign host",
			args:      []string{"exe", "https://evil.com/x"},
			configURL: "https://example.com",
		},
		{
			name:      "not a url",
			args:      []string{"exe", "not-a-url"},
			configURL: "https://example.com",
		},
		{
			name:      "not a url with schemeless config",
			args:      []string{"exe", "not-a-url"},
			configURL: "example.com",
		},
		{
			name:      "element zero never inspected",
			args:      []string{"https://example.com/self"},
			configURL: "https://example.com",
		},
		{
			name:      "element zero skipped even when matching",
			args:      []string{"https://example.com/self", "https://example.com/second"},
			configURL: "https://example.com",
			expected:  "https://example.com/second",
			found:     true,
		},
		{
			name:      "first match wins",
			args:      []string{"exe", "https://evil.com", "http://example.com/a", "https://example.com/b"},
			configURL: "https://example.com/home",
			expected:  "http://example.com/a",
			found:     true,
		},
		{
			name:      "scheme may differ from config",
			args:      []string{"exe", "http://example.com"},
			configURL: "https://example.com",
			expected:  "http://example.com",
			found:     true,
		},
		{
			name:      "subdomain is a different host",
			args:      []string{"exe", "https://www.example.com/"},
			configURL: "https://example.com",
		},
		{
			name:      "port must match",
			args:      []string{"exe", "https://example.com:8443/"},
			configURL: "https://example.com",
		},
		{
			name:      "empty host matches empty host",
			args:      []string{"exe", "http:///path"},
			configURL: "example.com",
			expected:  "http:///path",
			found:     true,
		},
		{
			name:      "empty allowed host ignores real hosts",
			args:      []string{"exe", "https://example.com"},
			configURL: "example.com",
		},
		{
			name:      "no args",
			args:      nil,
			configURL: "https://example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FindAllowedURL(tt.args, tt.configURL)
			if got != tt.expected || found != tt.found {
				t.Errorf("FindAllowedURL(%q, %q) = (%q, %v), want (%q, %v)",
					tt.args, tt.configURL, got, found, tt.expected, tt.found)
			}
		})
	}
}

func TestFindAllowedURLDoesNotMutateArgs(t *testing.T) {
	args := []string{"exe", "https://example.com/a"}
	FindAllowedURL(args, "https://example.com")
	if args[0] != "exe" || args[1] != "https://example.com/a" || len(args) != 2 {
		t.Errorf("args mutated: %q", args)
	}
}

func TestNavigateScript(t *testing.T) {
	got := NavigateScript("https://example.com/it's")
	want := `window.location.href = 'https://example.com/it\'s'`
	if got != want {
		t.Errorf("NavigateScript() = %q, want %q", got, want)
	}
}
