package kkdai

import "testing"

func TestExtractYouTubeID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		id      string
		wantErr bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"watch url with extras", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", false},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"short url with query", "https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ", false},
		{"no id", "https://www.youtube.com/watch", "", true},
		{"empty short url", "https://youtu.be/", "", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			id, err := extractYouTubeID(test.url)
			if test.wantErr {
				if err == nil {
					t.Errorf("extractYouTubeID(%q) succeeded, expected error", test.url)
				}
				return
			}
			if err != nil {
				t.Fatalf("extractYouTubeID(%q) error: %v", test.url, err)
			}
			if id != test.id {
				t.Errorf("extractYouTubeID(%q) = %q, expected %q", test.url, id, test.id)
			}
		})
	}
}
