package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeAPI struct {
	lastQuestion map[string]string
	lastQuery    string
	lastAuth     string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&f.lastQuestion)
		if f.lastQuestion["question"] == "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Invalid request format","details":"question: Question is required"}`))
			return
		}
		_, _ = w.Write([]byte(`{"answer":"Use Podman.","links":[{"url":"https://tds.example/docker","text":"Docker guide"}]}`))
	})
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","timestamp":"2025-06-01T12:00:00.000Z","message":"TDS Virtual TA API is running","version":"dev","checks":{"question_log":"ok"}}`))
	})
	mux.HandleFunc("GET /api/recent", func(w http.ResponseWriter, r *http.Request) {
		f.lastQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"id":2,"question":"second","answer":"a","links":"[]","createdAt":"2025-06-01T12:00:01Z"},` +
			`{"id":1,"question":"first","answer":"a","links":"[]","createdAt":"2025-06-01T12:00:00Z"}]`))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return f, ts
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAsk(t *testing.T) {
	f, ts := newFakeAPI(t)

	out, err := run(t, "ask", "Can", "I", "use", "Docker?", "--server", ts.URL, "--api-key", "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.lastQuestion["question"] != "Can I use Docker?" {
		t.Errorf("question not joined: %q", f.lastQuestion["question"])
	}
	if f.lastAuth != "Bearer k" {
		t.Errorf("auth header %q", f.lastAuth)
	}
	if !strings.Contains(out, "Use Podman.") || !strings.Contains(out, "https://tds.example/docker") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestAsk_Image(t *testing.T) {
	f, ts := newFakeAPI(t)
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(path, []byte("png-bytes"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "ask", "what is this", "--image", path, "--server", ts.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := base64.StdEncoding.EncodeToString([]byte("png-bytes")); f.lastQuestion["image"] != want {
		t.Errorf("image = %q, want %q", f.lastQuestion["image"], want)
	}

	if _, err := run(t, "ask", "q", "--image", "/does/not/exist", "--server", ts.URL); err == nil {
		t.Error("expected error for missing image")
	}
}

func TestAsk_ServerValidationError(t *testing.T) {
	_, ts := newFakeAPI(t)

	_, err := run(t, "ask", "", "--server", ts.URL)
	if err == nil || !strings.Contains(err.Error(), "Question is required") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAsk_RequiresArgs(t *testing.T) {
	if _, err := run(t, "ask"); err == nil {
		t.Fatal("expected error without question")
	}
}

func TestAsk_JSON(t *testing.T) {
	_, ts := newFakeAPI(t)

	out, err := run(t, "ask", "docker", "--json", "--server", ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var v map[string]any
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if v["answer"] != "Use Podman." {
		t.Errorf("unexpected JSON %v", v)
	}
}

func TestHealth(t *testing.T) {
	_, ts := newFakeAPI(t)

	out, err := run(t, "health", "--server", ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"status:  ok", "TDS Virtual TA API is running", "check question_log: ok"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRecent(t *testing.T) {
	f, ts := newFakeAPI(t)

	out, err := run(t, "recent", "--limit", "2", "--server", ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.lastQuery != "limit=2" {
		t.Errorf("query = %q", f.lastQuery)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[1], "2") || !strings.Contains(lines[2], "first") {
		t.Errorf("unexpected table:\n%s", out)
	}

	if _, err := run(t, "recent", "--limit", "-1", "--server", ts.URL); err == nil {
		t.Error("expected error for negative limit")
	}
}

func TestBadServerURL(t *testing.T) {
	if _, err := run(t, "health", "--server", "ftp://nope"); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Errorf("got %q", got)
	}
}
