package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aura/engine"
	"aura/render"
)

func testRequest() engine.GenerateRequest {
	return engine.GenerateRequest{
		RequestID: "req-1",
		Image:     engine.SourceImage("aGVsbG8="),
		Prompt:    "rotate the subject",
		Render: render.Config{
			Resolution:  render.Resolution2K,
			AspectRatio: render.AspectWide,
		},
	}
}

func successBody(data string) string {
	return `{"candidates":[{"content":{"parts":[{"text":"ok"},{"inlineData":{"mimeType":"image/png","data":"` + data + `"}}]}}]}`
}

func TestGenerateExtractsFirstInlineImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "k-123" {
			t.Errorf("api key not sent: %q", got)
		}
		w.Write([]byte(successBody("Zmlyc3Q=")))
	}))
	defer srv.Close()

	client := NewClient(Options{APIKey: "k-123", BaseURL: srv.URL})
	res, err := client.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ImageData != "data:image/png;base64,Zmlyc3Q=" {
		t.Fatalf("unexpected image data: %q", res.ImageData)
	}
}

func TestGenerateMissingKeyIsConfigurationError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), testRequest())
	if !engine.IsKind(err, engine.KindConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("no network call expected, got %d", calls)
	}
}

func TestGenerate403IsAuthorizationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"billing disabled","status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	client := NewClient(Options{APIKey: "k", BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), testRequest())
	if !engine.IsKind(err, engine.KindAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
	if !strings.Contains(err.Error(), "billing disabled") {
		t.Fatalf("provider message lost: %v", err)
	}
}

func TestGeneratePermissionMessageWithoutForbiddenStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"PERMISSION_DENIED: enable billing first"}}`))
	}))
	defer srv.Close()

	client := NewClient(Options{APIKey: "k", BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), testRequest())
	if !engine.IsKind(err, engine.KindAuthorization) {
		t.Fatalf("expected authorization error from message pattern, got %v", err)
	}
}

func TestGenerateNoImagePartIsClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"sorry, cannot comply"}]}}]}`))
	}))
	defer srv.Close()

	client := NewClient(Options{APIKey: "k", BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), testRequest())
	if !engine.IsKind(err, engine.KindNoImageReturned) {
		t.Fatalf("expected no-image error, got %v", err)
	}
}

func TestGenerateImageConfigOnlyForProModel(t *testing.T) {
	var bodies []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var decoded map[string]any
		if err := json.NewDecoder(r.Body).Decode(&decoded); err != nil {
			t.Errorf("decode request: %v", err)
		}
		bodies = append(bodies, decoded)
		w.Write([]byte(successBody("eA==")))
	}))
	defer srv.Close()

	flash := NewClient(Options{APIKey: "k", BaseURL: srv.URL, Model: ModelFlashImage})
	if _, err := flash.Generate(context.Background(), testRequest()); err != nil {
		t.Fatalf("flash generate: %v", err)
	}
	pro := NewClient(Options{APIKey: "k", BaseURL: srv.URL, Model: ModelProImage})
	if _, err := pro.Generate(context.Background(), testRequest()); err != nil {
		t.Fatalf("pro generate: %v", err)
	}

	if len(bodies) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(bodies))
	}
	if _, ok := bodies[0]["generationConfig"]; ok {
		t.Fatal("flash model must not send structured image config")
	}
	cfg, ok := bodies[1]["generationConfig"].(map[string]any)
	if !ok {
		t.Fatal("pro model must send structured image config")
	}
	img, _ := cfg["imageConfig"].(map[string]any)
	if img["imageSize"] != "2K" || img["aspectRatio"] != "16:9" {
		t.Fatalf("unexpected image config: %v", img)
	}
}

func TestGenerateRereadsKeyPerCall(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Query().Get("key"))
		w.Write([]byte(successBody("eA==")))
	}))
	defer srv.Close()

	key := "first"
	client := NewClient(Options{KeySource: func() string { return key }, BaseURL: srv.URL})
	if _, err := client.Generate(context.Background(), testRequest()); err != nil {
		t.Fatalf("first call: %v", err)
	}
	key = "second"
	if _, err := client.Generate(context.Background(), testRequest()); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if len(seen) != 2 || seen[0] != "first" || seen[1] != "second" {
		t.Fatalf("credential not re-read per call: %v", seen)
	}
}

func TestModelsCapabilityFlags(t *testing.T) {
	for _, m := range Models() {
		if m.ID == ModelProImage {
			if !m.SupportsImageConfig || !m.RequiresElevatedCredential {
				t.Fatalf("pro model flags wrong: %+v", m)
			}
		}
		if m.ID == ModelFlashImage && m.RequiresElevatedCredential {
			t.Fatal("flash model should not require an elevated credential")
		}
	}
}
