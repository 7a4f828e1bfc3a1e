package parser

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/use-agent/sift/models"
)

type stubParser struct{ title string }

func (s stubParser) Parse() (*models.Entry, error) {
	return &models.Entry{Title: s.title}, nil
}

func prefixFamily(name, prefix string) Family {
	return Family{
		Name: name,
		Probe: func(body []byte, _ http.Header, _ *url.URL) (Parser, bool) {
			if !strings.HasPrefix(string(body), prefix) {
				return nil, false
			}
			return stubParser{title: name}, true
		},
	}
}

func TestIdentify_FirstMatchWins(t *testing.T) {
	r := NewRegistry(
		prefixFamily("first", "{"),
		prefixFamily("second", "{"),
		prefixFamily("third", "<"),
	)
	u, _ := url.Parse("https://example.com")

	tests := []struct {
		name     string
		body     string
		wantName string
		wantOK   bool
	}{
		{"both match, earlier wins", `{"a":1}`, "first", true},
		{"only later matches", "<html>", "third", true},
		{"none match", "plain", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, name, ok := r.Identify([]byte(tt.body), http.Header{}, u)
			if ok != tt.wantOK || name != tt.wantName {
				t.Fatalf("Identify() = (%q, %v), want (%q, %v)", name, ok, tt.wantName, tt.wantOK)
			}
			if !ok {
				if p != nil {
					t.Errorf("expected nil parser on decline, got %T", p)
				}
				return
			}
			e, err := p.Parse()
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if e.Title != tt.wantName {
				t.Errorf("parser from wrong family: %q", e.Title)
			}
		})
	}
}

func TestNewRegistry_SkipsNilProbes(t *testing.T) {
	r := NewRegistry(Family{Name: "broken"}, prefixFamily("ok", ""))
	names := r.Names()
	if len(names) != 1 || names[0] != "ok" {
		t.Errorf("Names() = %v, want [ok]", names)
	}
}

func TestIdentify_EmptyRegistry(t *testing.T) {
	r := NewRegistry()
	if _, _, ok := r.Identify([]byte("<html>"), nil, nil); ok {
		t.Error("empty registry should never identify content")
	}
}
