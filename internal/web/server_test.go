package web

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/agusx1211/perlin-noise/internal/generator"
	"github.com/agusx1211/perlin-noise/internal/state"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(1, 1, color.RGBA{10, 20, 30, 255})
	return img
}

func TestFieldUnavailableBeforeUpdate(t *testing.T) {
	srv := httptest.NewServer(NewServer().Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/field.png")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status=%d want 503", resp.StatusCode)
	}
}

func TestFieldAndState(t *testing.T) {
	s := NewServer()
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	st := state.Default()
	st.Algorithm = generator.Improved
	st.Seed = 5
	if err := s.Update(st, testImage()); err != nil {
		t.Fatalf("Update: %v", err)
	}

	resp, err := http.Get(srv.URL + "/field.png")
	if err != nil {
		t.Fatalf("GET field: %v", err)
	}
	img, err := png.Decode(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Fatalf("bounds=%v", b)
	}

	resp, err = http.Get(srv.URL + "/api/state")
	if err != nil {
		t.Fatalf("GET state: %v", err)
	}
	var snap Snapshot
	err = json.NewDecoder(resp.Body).Decode(&snap)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if snap.Version != 1 || snap.Algorithm != generator.Improved || snap.Seed != 5 {
		t.Fatalf("snapshot=%+v", snap)
	}
}

func TestIndex(t *testing.T) {
	srv := httptest.NewServer(NewServer().Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		t.Fatalf("content type %q", resp.Header.Get("Content-Type"))
	}

	resp404, err := http.Get(srv.URL + "/missing")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp404.Body.Close()
	if resp404.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d want 404", resp404.StatusCode)
	}
}

func TestWebSocketReceivesUpdates(t *testing.T) {
	s := NewServer()
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var snap Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("initial snapshot: %v", err)
	}
	if snap.Version != 0 {
		t.Fatalf("initial version=%d want 0", snap.Version)
	}

	st := state.Default()
	st.Seed = 77
	if err := s.Update(st, testImage()); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("update snapshot: %v", err)
	}
	if snap.Version != 1 || snap.Seed != 77 {
		t.Fatalf("snapshot=%+v", snap)
	}
	if s.ClientCount() != 1 {
		t.Fatalf("ClientCount()=%d want 1", s.ClientCount())
	}
}
