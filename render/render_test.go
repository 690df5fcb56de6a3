package render

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/net/html"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

const staticPage = `<!DOCTYPE html>
<html lang="en">
<head><title>Static</title></head>
<body>
<main>
<h1>Article Title</h1>
<p>Lorem ipsum dolor sit amet, consectetur adipiscing elit. Sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat. Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur.</p>
</main>
</body>
</html>`

const shellPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>App</title></head>
<body>
<div id="root"></div>
<script src="/static/js/main.chunk.js"></script>
<script>window.__STATE__ = {"items": [1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20]};</script>
</body>
</html>`

func testConfig() Config {
	return Config{AllowPrivate: true, Logger: quiet}
}

func title(doc *html.Node) string {
	var out string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			out = n.FirstChild.Data
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func serve(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_Fetch(t *testing.T) {
	var ua string
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, staticPage)
	})

	cfg := testConfig()
	cfg.UserAgent = "a11y-test/1"
	p, err := NewFetcher(cfg).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if p.StatusCode != http.StatusOK {
		t.Errorf("status = %d", p.StatusCode)
	}
	if got := title(p.Doc); got != "Static" {
		t.Errorf("title = %q", got)
	}
	if !p.Sufficient {
		t.Error("static page should be sufficient")
	}
	if ua != "a11y-test/1" {
		t.Errorf("User-Agent = %q", ua)
	}
}

func TestFetcher_ErrorStatus(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	if _, err := NewFetcher(testConfig()).Render(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestFetcher_TooLarge(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, strings.Repeat("x", 1000))
	})
	cfg := testConfig()
	cfg.MaxBodySize = 100
	_, err := NewFetcher(cfg).Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
}

func TestFetcher_Charset(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.Write([]byte("<html><head><title>caf\xe9</title></head><body></body></html>"))
	})
	p, err := NewFetcher(testConfig()).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := title(p.Doc); got != "café" {
		t.Errorf("title = %q, want café", got)
	}
}

func TestFetcher_RejectsPrivateByDefault(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	})
	_, err := NewFetcher(Config{Logger: quiet}).Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrPrivateHost) {
		t.Fatalf("err = %v, want ErrPrivateHost", err)
	}
}

func TestFetcher_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	if _, err := NewFetcher(testConfig()).Fetch(context.Background(), url); err == nil {
		t.Fatal("expected error for closed server")
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url          string
		allowPrivate bool
		want         error
		wantErr      bool
	}{
		{"https://93.184.216.34/", false, nil, false},
		{"ftp://example.com/", false, ErrUnsafeScheme, true},
		{"javascript:alert(1)", false, ErrUnsafeScheme, true},
		{"/relative/path", false, ErrUnsafeScheme, true},
		{"http://127.0.0.1:8080/", false, ErrPrivateHost, true},
		{"http://10.1.2.3/", false, ErrPrivateHost, true},
		{"http://192.168.0.10/", false, ErrPrivateHost, true},
		{"http://[::1]/", false, ErrPrivateHost, true},
		{"http://127.0.0.1:8080/", true, nil, false},
		{"http:///nohost", false, nil, true},
	}
	for _, tt := range tests {
		err := ValidateURL(tt.url, tt.allowPrivate)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) = %v, wantErr %v", tt.url, err, tt.wantErr)
			continue
		}
		if tt.want != nil && !errors.Is(err, tt.want) {
			t.Errorf("ValidateURL(%q) = %v, want %v", tt.url, err, tt.want)
		}
	}
}

func TestIsSufficient(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   bool
	}{
		{"static", staticPage, true},
		{"spa shell", shellPage, false},
		{"too short", `<html><body>hi</body></html>`, false},
		{"empty body", `<!DOCTYPE html><html><head></head><body></body></html>`, false},
		{"noscript", strings.Replace(staticPage, "<main>", "<noscript>You need to enable JavaScript to run this app.</noscript><main>", 1), false},
		{"script heavy", `<html><body><p>short text</p><script>` + strings.Repeat("var a = 1;", 200) + `</script></body></html>`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseMarkup(tt.markup)
			if err != nil {
				t.Fatal(err)
			}
			if got := IsSufficient(doc, len(tt.markup)); got != tt.want {
				t.Errorf("IsSufficient = %v, want %v", got, tt.want)
			}
		})
	}
}

type fakeRenderer struct {
	calls int
	doc   *html.Node
	err   error
}

func (f *fakeRenderer) Render(context.Context, string) (*html.Node, error) {
	f.calls++
	return f.doc, f.err
}

func TestAuto(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/app" {
			io.WriteString(w, shellPage)
			return
		}
		io.WriteString(w, staticPage)
	})
	rendered, _ := ParseMarkup(`<html><head><title>Rendered</title></head><body></body></html>`)

	t.Run("static page skips browser", func(t *testing.T) {
		br := &fakeRenderer{doc: rendered}
		a := NewAuto(NewFetcher(testConfig()), br, quiet)
		doc, err := a.Render(context.Background(), srv.URL+"/")
		if err != nil {
			t.Fatal(err)
		}
		if br.calls != 0 {
			t.Errorf("browser calls = %d, want 0", br.calls)
		}
		if got := title(doc); got != "Static" {
			t.Errorf("title = %q", got)
		}
	})

	t.Run("shell escalates", func(t *testing.T) {
		br := &fakeRenderer{doc: rendered}
		a := NewAuto(NewFetcher(testConfig()), br, quiet)
		doc, err := a.Render(context.Background(), srv.URL+"/app")
		if err != nil {
			t.Fatal(err)
		}
		if br.calls != 1 {
			t.Errorf("browser calls = %d, want 1", br.calls)
		}
		if got := title(doc); got != "Rendered" {
			t.Errorf("title = %q", got)
		}
	})

	t.Run("browser failure keeps fetched markup", func(t *testing.T) {
		br := &fakeRenderer{err: errors.New("no chrome")}
		a := NewAuto(NewFetcher(testConfig()), br, quiet)
		doc, err := a.Render(context.Background(), srv.URL+"/app")
		if err != nil {
			t.Fatal(err)
		}
		if got := title(doc); got != "App" {
			t.Errorf("title = %q", got)
		}
	})
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	if err := os.WriteFile(path, []byte(staticPage), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ParseFile(path, 0)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if got := title(doc); got != "Static" {
		t.Errorf("title = %q", got)
	}

	if _, err := ParseFile(path, 10); !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
	if _, err := ParseFile(filepath.Join(dir, "missing.html"), 0); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNew(t *testing.T) {
	r, err := New(Config{Mode: ModeHTTP, Logger: quiet})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.(*Fetcher); !ok {
		t.Errorf("http mode returned %T", r)
	}

	r, err = New(Config{Logger: quiet})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.(*Auto); !ok {
		t.Errorf("default mode returned %T", r)
	}
	if err := Close(r); err != nil {
		t.Errorf("Close unstarted auto: %v", err)
	}

	if _, err := New(Config{Mode: "carrier-pigeon"}); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestResourceTypes(t *testing.T) {
	got := resourceTypes([]string{"images", "Fonts", " media ", "XHR", "fetch", "bogus"}, quiet)
	want := []proto.NetworkResourceType{
		proto.NetworkResourceTypeImage,
		proto.NetworkResourceTypeFont,
		proto.NetworkResourceTypeMedia,
		proto.NetworkResourceTypeXHR,
		proto.NetworkResourceTypeFetch,
	}
	if len(got) != len(want) {
		t.Fatalf("resolved %d types, want %d: %v", len(got), len(want), got)
	}
	for _, typ := range want {
		if !got[typ] {
			t.Errorf("%s not blocked", typ)
		}
	}
	if got[proto.NetworkResourceTypeDocument] || got[proto.NetworkResourceTypeStylesheet] {
		t.Error("unlisted type blocked")
	}
	if resourceTypes(nil, quiet) != nil {
		t.Error("empty list should block nothing")
	}
}

func TestConfigDefaults_ResolvesBlocking(t *testing.T) {
	cfg := Config{Logger: quiet, Browser: BrowserConfig{ResourceBlocking: []string{"stylesheets"}}}
	cfg.defaults()
	if !cfg.Browser.blocked[proto.NetworkResourceTypeStylesheet] || len(cfg.Browser.blocked) != 1 {
		t.Errorf("blocked = %v", cfg.Browser.blocked)
	}
}
