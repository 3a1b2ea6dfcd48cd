package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestRegistry(t *testing.T, files map[string]string, statuses map[string]int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if code, ok := statuses[r.URL.Path]; ok {
			w.WriteHeader(code)
			return
		}
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestResources(t *testing.T) {
	tests := []struct {
		kind Kind
		name string
		want []string
	}{
		{KindComponent, "button", []string{"button.tsx"}},
		{KindTheme, "dark", []string{"dark/preset.js", "dark/lib.js"}},
	}

	for _, tt := range tests {
		got := Resources(tt.kind, tt.name)
		if len(got) != len(tt.want) {
			t.Fatalf("Resources(%s, %s) returned %d resources, want %d", tt.kind, tt.name, len(got), len(tt.want))
		}
		for i, res := range got {
			if res.File != tt.want[i] {
				t.Errorf("resource[%d].File = %q, want %q", i, res.File, tt.want[i])
			}
			if res.Name != tt.name || res.Kind != tt.kind {
				t.Errorf("resource[%d] = %+v, want name %q kind %s", i, res, tt.name, tt.kind)
			}
		}
	}
}

func TestClientURL_JoinsRootAndFile(t *testing.T) {
	c := NewClient(
		WithRoot(KindComponent, "https://raw.example.com/elements/main/src/components/"),
		WithRoot(KindTheme, "https://raw.example.com/themes/main/src"),
	)

	tests := []struct {
		res  Resource
		want string
	}{
		{Resources(KindComponent, "button")[0], "https://raw.example.com/elements/main/src/components/button.tsx"},
		{Resources(KindTheme, "dark")[1], "https://raw.example.com/themes/main/src/dark/lib.js"},
	}
	for _, tt := range tests {
		got, err := c.URL(tt.res)
		if err != nil {
			t.Fatalf("URL(%s): %v", tt.res.File, err)
		}
		if got != tt.want {
			t.Errorf("URL(%s) = %q, want %q", tt.res.File, got, tt.want)
		}
	}
}

func TestClientURL_MissingRoot(t *testing.T) {
	c := NewClient()
	if _, err := c.URL(Resources(KindTheme, "dark")[0]); err == nil {
		t.Fatal("expected error when no root is configured")
	}
}

func TestFetch_ClassifiesStatus(t *testing.T) {
	srv := newTestRegistry(t,
		map[string]string{"/components/button.tsx": "/** @npm clsx */ export const Button = 1"},
		map[string]int{"/components/broken.tsx": http.StatusInternalServerError},
	)
	c := NewClient(WithRoot(KindComponent, srv.URL+"/components/"))
	ctx := context.Background()

	found := c.Fetch(ctx, Resources(KindComponent, "button")[0])
	if found.Status != StatusFound {
		t.Fatalf("button status = %s, want found (err %v)", found.Status, found.Err)
	}
	if string(found.Body) != "/** @npm clsx */ export const Button = 1" {
		t.Errorf("body = %q", found.Body)
	}

	missing := c.Fetch(ctx, Resources(KindComponent, "ghost")[0])
	if missing.Status != StatusNotFound {
		t.Errorf("ghost status = %s, want not found", missing.Status)
	}
	if missing.Err != nil || len(missing.Body) != 0 {
		t.Errorf("not found result should carry no error or body: %+v", missing)
	}

	broken := c.Fetch(ctx, Resources(KindComponent, "broken")[0])
	if broken.Status != StatusTransportError {
		t.Fatalf("broken status = %s, want transport error", broken.Status)
	}
	var se *StatusError
	if !errors.As(broken.Err, &se) || se.Code != http.StatusInternalServerError {
		t.Errorf("broken err = %v, want StatusError 500", broken.Err)
	}
}

func TestFetch_OversizedBodyIsTransportError(t *testing.T) {
	srv := newTestRegistry(t, map[string]string{
		"/components/huge.tsx":  strings.Repeat("x", maxAssetBytes+100),
		"/components/limit.tsx": strings.Repeat("x", maxAssetBytes),
	}, nil)
	c := NewClient(WithRoot(KindComponent, srv.URL+"/components/"))
	ctx := context.Background()

	huge := c.Fetch(ctx, Resources(KindComponent, "huge")[0])
	if huge.Status != StatusTransportError {
		t.Fatalf("huge status = %s (len %d), want transport error", huge.Status, len(huge.Body))
	}
	if huge.Err == nil || !strings.Contains(huge.Err.Error(), "exceeds") {
		t.Errorf("huge err = %v, want size error", huge.Err)
	}
	if len(huge.Body) != 0 {
		t.Errorf("rejected body should be dropped, got %d bytes", len(huge.Body))
	}

	limit := c.Fetch(ctx, Resources(KindComponent, "limit")[0])
	if limit.Status != StatusFound || len(limit.Body) != maxAssetBytes {
		t.Errorf("limit status = %s len = %d, want found with %d bytes", limit.Status, len(limit.Body), maxAssetBytes)
	}
}

func TestFetch_NetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	root := srv.URL
	srv.Close()

	c := NewClient(WithRoot(KindComponent, root))
	res := c.Fetch(context.Background(), Resources(KindComponent, "button")[0])
	if res.Status != StatusTransportError || res.Err == nil {
		t.Fatalf("result = %+v, want transport error with err", res)
	}
}

func TestFetch_CancelledContext(t *testing.T) {
	srv := newTestRegistry(t, map[string]string{"/button.tsx": "x"}, nil)
	c := NewClient(WithRoot(KindComponent, srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.Fetch(ctx, Resources(KindComponent, "button")[0])
	if res.Status != StatusTransportError {
		t.Fatalf("status = %s, want transport error", res.Status)
	}
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", res.Err)
	}
}

func TestFetch_SendsUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient(WithRoot(KindComponent, srv.URL), WithUserAgent("tailfront/1.2.3"))
	c.Fetch(context.Background(), Resources(KindComponent, "button")[0])
	if got != "tailfront/1.2.3" {
		t.Errorf("User-Agent = %q, want tailfront/1.2.3", got)
	}
}

func TestValidateName(t *testing.T) {
	valid := []string{"button", "forms/input", "dark-mode"}
	invalid := []string{"", "  ", "../etc", "/abs", "a//b", `a\b`, "a/./b"}

	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) = %v, want nil", name, err)
		}
	}
	for _, name := range invalid {
		if err := ValidateName(name); err == nil {
			t.Errorf("ValidateName(%q) = nil, want error", name)
		}
	}
}
