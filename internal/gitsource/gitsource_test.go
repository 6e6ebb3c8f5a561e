package gitsource

import (
	"path/filepath"
	"testing"
)

func TestIsGitURL(t *testing.T) {
	testCases := []struct {
		path     string
		expected bool
	}{
		{"https://github.com/user/cards.git", true},
		{"https://github.com/user/cards", true},
		{"git@github.com:user/cards.git", true},
		{"/home/user/cards", false},
		{"./cards", false},
		{"notes", false},
	}

	for _, tc := range testCases {
		if got := IsGitURL(tc.path); got != tc.expected {
			t.Errorf("IsGitURL(%q) = %v, expected %v", tc.path, got, tc.expected)
		}
	}
}

func TestLocalPath(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		expected string
		wantErr  bool
	}{
		{
			name:     "https URL",
			url:      "https://github.com/user/cards.git",
			expected: filepath.Join("repos", "github.com", "user", "cards"),
		},
		{
			name:     "scp-style remote",
			url:      "git@github.com:user/cards.git",
			expected: filepath.Join("repos", "github.com", "user", "cards"),
		},
		{
			name:    "unparseable",
			url:     "not-a-url",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LocalPath("repos", tc.url)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got path %q", tc.url, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}
