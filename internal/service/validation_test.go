package service

import (
	"context"
	"errors"
	"net"
	"testing"
)

func TestNormalizerEmail(t *testing.T) {
	n := NewNormalizer("US")

	tests := map[string]struct {
		input   string
		want    string
		wantErr bool
	}{
		"lower cased":    {input: "  Ada@Example.COM ", want: "ada@example.com"},
		"plus address":   {input: "ada+jobs@example.com", want: "ada+jobs@example.com"},
		"idn domain":     {input: "ada@bücher.de", want: "ada@xn--bcher-kva.de"},
		"empty":          {input: "  ", wantErr: true},
		"missing domain": {input: "ada@", wantErr: true},
		"no tld":         {input: "ada@localhost", wantErr: true},
		"bad label":      {input: "ada@-example.com", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := n.Email(context.Background(), tc.input)
			if tc.wantErr {
				var vErr ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNormalizerEmailChecksMX(t *testing.T) {
	resolver := &stubDNSResolver{
		mx: map[string]bool{
			"example.com": true,
		},
	}
	n := NewNormalizer("US", WithDNSResolver(resolver))

	if _, err := n.Email(context.Background(), "test@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := n.Email(context.Background(), "user@missingmx.com"); err == nil {
		t.Fatalf("expected error for domain without mx")
	}
}

func TestNormalizerPhone(t *testing.T) {
	n := NewNormalizer("")
	if n.DefaultRegion != "US" {
		t.Fatalf("expected default region US, got %s", n.DefaultRegion)
	}

	if got := n.Phone(" (415) 555-1234 "); got != "+14155551234" {
		t.Fatalf("unexpected normalized phone %q", got)
	}
	if got := n.Phone("+1 415.555.1234"); got != "+14155551234" {
		t.Fatalf("unexpected normalized phone %q", got)
	}
	if got := n.Phone(" ext. 12 "); got != "ext. 12" {
		t.Fatalf("expected unparseable input kept, got %q", got)
	}
}

func TestNormalizerURL(t *testing.T) {
	n := NewNormalizer("US")

	got, err := n.URL("meet.example.com/room?utm_source=mail&id=7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://meet.example.com/room?id=7" {
		t.Fatalf("unexpected url %q", got)
	}

	if _, err := n.URL("  "); err == nil {
		t.Fatalf("expected error for empty url")
	}
}

type stubDNSResolver struct {
	mx map[string]bool
}

func (s *stubDNSResolver) LookupMX(_ context.Context, domain string) ([]*net.MX, error) {
	if s.mx == nil {
		return nil, errors.New("no mx")
	}
	if ok := s.mx[domain]; ok {
		return []*net.MX{{Host: "mail." + domain, Pref: 10}}, nil
	}
	return nil, errors.New("no mx")
}
