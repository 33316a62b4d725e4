package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestResolver(handler http.HandlerFunc) (*Resolver, func()) {
	srv := httptest.NewServer(handler)
	r := NewResolver(srv.Client())
	r.BaseURL = srv.URL
	return r, srv.Close
}

func TestSearchFirstVideoURL(t *testing.T) {
	r, closeFn := newTestResolver(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"url":"/watch?v=dQw4w9WgXcQ&pp=xyz"} {"url":"/watch?v=aaaaaaaaaaa"}`))
	})
	defer closeFn()

	got, err := r.SearchFirstVideoURL(context.Background(), "never gonna give you up")
	if err != nil {
		t.Fatalf("SearchFirstVideoURL() error: %v", err)
	}

	expected := r.BaseURL + "/watch?v=dQw4w9WgXcQ"
	if got != expected {
		t.Errorf("SearchFirstVideoURL() = %q, expected %q", got, expected)
	}
}

func TestSearchFirstVideoURL_NoMatch(t *testing.T) {
	r, closeFn := newTestResolver(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`<html>nothing here</html>`))
	})
	defer closeFn()

	_, err := r.SearchFirstVideoURL(context.Background(), "gibberish")
	if !errors.Is(err, ErrNoVideoMatch) {
		t.Errorf("error = %v, expected ErrNoVideoMatch", err)
	}
}

func TestPlaylistVideoURLs(t *testing.T) {
	r, closeFn := newTestResolver(func(w http.ResponseWriter, req *http.Request) {
		// second entry duplicates the first
		w.Write([]byte(`"url":"/watch?v=aaaaaaaaaaa" "url":"/watch?v=aaaaaaaaaaa" "url":"/watch?v=bbbbbbbbbbb" "url":"/watch?v=ccccccccccc"`))
	})
	defer closeFn()

	urls, err := r.PlaylistVideoURLs(context.Background(), r.BaseURL+"/playlist?list=PL1", 0)
	if err != nil {
		t.Fatalf("PlaylistVideoURLs() error: %v", err)
	}
	if len(urls) != 3 {
		t.Fatalf("got %d urls, expected 3 (duplicates removed): %v", len(urls), urls)
	}
	if urls[0] != r.BaseURL+"/watch?v=aaaaaaaaaaa" {
		t.Errorf("first url = %q, page order not preserved", urls[0])
	}
}

func TestPlaylistVideoURLs_Limit(t *testing.T) {
	r, closeFn := newTestResolver(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`"url":"/watch?v=aaaaaaaaaaa" "url":"/watch?v=bbbbbbbbbbb" "url":"/watch?v=ccccccccccc"`))
	})
	defer closeFn()

	urls, err := r.PlaylistVideoURLs(context.Background(), r.BaseURL+"/playlist?list=PL1", 2)
	if err != nil {
		t.Fatalf("PlaylistVideoURLs() error: %v", err)
	}
	if len(urls) != 2 {
		t.Errorf("got %d urls, expected limit of 2", len(urls))
	}
}

func TestPlaylistVideoURLs_Empty(t *testing.T) {
	r, closeFn := newTestResolver(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`<html>no videos</html>`))
	})
	defer closeFn()

	_, err := r.PlaylistVideoURLs(context.Background(), r.BaseURL+"/playlist?list=PL1", 0)
	if !errors.Is(err, ErrEmptyPlaylist) {
		t.Errorf("error = %v, expected ErrEmptyPlaylist", err)
	}
}
