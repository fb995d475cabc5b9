package transcribe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTranscribeSendsMultipartAndReturnsText(t *testing.T) {
	var gotAuth, gotModel, gotLanguage, gotAudio string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")
		file, _, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		var sb strings.Builder
		buf := make([]byte, 64)
		for {
			n, err := file.Read(buf)
			sb.Write(buf[:n])
			if err != nil {
				break
			}
		}
		gotAudio = sb.String()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "patient reports fatigue"}`))
	}))
	defer srv.Close()

	tr := New(srv.URL, "test-key", "")
	text, err := tr.Transcribe(context.Background(), "consult.wav", strings.NewReader("fake-audio-bytes"), "ar")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "patient reports fatigue" {
		t.Fatalf("text = %q", text)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if gotModel != DefaultModel {
		t.Fatalf("model = %q", gotModel)
	}
	if gotLanguage != "ar" {
		t.Fatalf("language = %q", gotLanguage)
	}
	if gotAudio != "fake-audio-bytes" {
		t.Fatalf("audio = %q", gotAudio)
	}
}

func TestTranscribeOmitsEmptyLanguageHint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if _, ok := r.MultipartForm.Value["language"]; ok {
			t.Error("language field should be omitted when empty")
		}
		w.Write([]byte(`{"text": "ok"}`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL, "k", "").Transcribe(context.Background(), "a.wav", strings.NewReader("x"), ""); err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
}

func TestTranscribeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "bad audio"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "k", "").Transcribe(context.Background(), "a.wav", strings.NewReader("x"), "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "status 400") {
		t.Fatalf("err = %v", err)
	}
}

func TestTranscribeNotConfigured(t *testing.T) {
	_, err := New("http://localhost:0", "", "").Transcribe(context.Background(), "a.wav", strings.NewReader("x"), "")
	if err != ErrNotConfigured {
		t.Fatalf("err = %v", err)
	}
}
