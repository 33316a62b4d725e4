package youtube

import "testing"

func TestIsYouTubeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", true},
		{"https://music.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://soundcloud.com/artist/track", false},
		{"never gonna give you up", false},
		{"", false},
	}

	for _, test := range tests {
		if got := isYouTubeURL(test.input); got != test.expected {
			t.Errorf("isYouTubeURL(%q) = %v, expected %v", test.input, got, test.expected)
		}
	}
}

func TestIsYouTubePlaylistURL(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"https://www.youtube.com/watch?v=abc&list=PL123", true},
		{"https://www.youtube.com/playlist?list=PL123", true},
		{"https://www.youtube.com/watch?v=abc", false},
		{"https://youtu.be/abc", false},
	}

	for _, test := range tests {
		if got := isYouTubePlaylistURL(test.input); got != test.expected {
			t.Errorf("isYouTubePlaylistURL(%q) = %v, expected %v", test.input, got, test.expected)
		}
	}
}

func TestCleanVideoURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s&feature=share",
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			"https://youtu.be/dQw4w9WgXcQ?t=120",
			"https://youtu.be/dQw4w9WgXcQ",
		},
		{
			"https://music.youtube.com/watch?v=dQw4w9WgXcQ&si=xyz",
			"https://music.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			// unknown host stays untouched
			"https://example.com/watch?v=abc",
			"https://example.com/watch?v=abc",
		},
	}

	for _, test := range tests {
		if got := CleanVideoURL(test.input); got != test.expected {
			t.Errorf("CleanVideoURL(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}
