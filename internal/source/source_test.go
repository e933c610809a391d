package source

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		kind string
		host string
		port int
		want DataSource
	}{
		{"empty_defaults_to_embedded", "", "", 0, EmbeddedCommand{}},
		{"embedded", "embedded_command", "", 0, EmbeddedCommand{}},
		{"legacy_alias", "tauri_webview", "", 0, EmbeddedCommand{}},
		{"crawler", "crawling_server", "localhost", 4444, RemoteCrawler{Host: "localhost", Port: 4444}},
		{"disabled", " Disabled ", "", 0, Disabled{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.kind, tc.host, tc.port)
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Parse = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("carrier_pigeon", "", 0); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	if _, err := Parse(KindCrawler, "", 4444); err == nil {
		t.Fatalf("expected error for empty host")
	}
	if _, err := Parse(KindCrawler, "localhost", 70000); err == nil {
		t.Fatalf("expected error for port out of range")
	}
}

func TestKindRoundTrip(t *testing.T) {
	for _, ds := range []DataSource{EmbeddedCommand{}, RemoteCrawler{Host: "h", Port: 1}, Disabled{}} {
		parsed, err := Parse(Kind(ds), "h", 1)
		if err != nil {
			t.Fatalf("Parse(Kind(%v)) returned error: %v", ds, err)
		}
		if parsed != ds {
			t.Fatalf("round trip = %#v, want %#v", parsed, ds)
		}
	}
	if Kind(nil) != KindDisabled {
		t.Fatalf("Kind(nil) = %q, want %q", Kind(nil), KindDisabled)
	}
}

func TestRemoteCrawlerAddr(t *testing.T) {
	r := RemoteCrawler{Host: "localhost", Port: 4444}
	if r.Addr() != "localhost:4444" {
		t.Fatalf("Addr = %q", r.Addr())
	}
	if r.String() != "crawler localhost:4444" {
		t.Fatalf("String = %q", r.String())
	}
}
