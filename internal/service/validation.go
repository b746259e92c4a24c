package service

import (
	"context"
	"errors"
	"net"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

const (
	trackingPrefix     = "utm_"
	defaultPhoneRegion = "US"
)

// DNSResolver abstracts DNS lookups to simplify testing.
type DNSResolver interface {
	LookupMX(ctx context.Context, domain string) ([]*net.MX, error)
}

// Normalizer cleans contact details entered by recruiters and visitors.
type Normalizer struct {
	DefaultRegion string
	dnsResolver   DNSResolver
}

// NormalizerOption configures optional dependencies.
type NormalizerOption func(*Normalizer)

// WithDNSResolver enables MX checks on email domains.
func WithDNSResolver(resolver DNSResolver) NormalizerOption {
	return func(n *Normalizer) {
		n.dnsResolver = resolver
	}
}

// WithSystemDNS enables MX checks through the system resolver.
func WithSystemDNS() NormalizerOption {
	return WithDNSResolver(systemDNSResolver{})
}

// NewNormalizer builds a normalizer for the given phone region. MX checks are off
// unless a resolver option is supplied.
func NewNormalizer(defaultRegion string, opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{DefaultRegion: strings.ToUpper(strings.TrimSpace(defaultRegion))}
	for _, opt := range opts {
		opt(n)
	}
	if n.DefaultRegion == "" {
		n.DefaultRegion = defaultPhoneRegion
	}
	return n
}

// Email lower-cases and validates an address. The domain is converted to ASCII
// and, when a resolver is configured, must publish an MX record.
func (n *Normalizer) Email(ctx context.Context, raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", invalidf("email is required")
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "", invalidf("invalid email address")
	}
	domain, err := idnaProfile.ToASCII(email[at+1:])
	if err != nil || domain == "" || !isDomainValid(domain) {
		return "", invalidf("invalid email address")
	}
	email = email[:at] + "@" + domain
	if !emailPattern.MatchString(email) {
		return "", invalidf("invalid email address")
	}
	if n.dnsResolver != nil && !n.hasMXRecord(ctx, domain) {
		return "", invalidf("email domain %s does not accept mail", domain)
	}
	return email, nil
}

// Phone formats a number as E.164 when it parses for the default region and
// returns the trimmed input otherwise.
func (n *Normalizer) Phone(raw string) string {
	raw = strings.TrimSpace(raw)
	if normalized := normalizePhone(raw, n.DefaultRegion); normalized != "" {
		return normalized
	}
	return raw
}

// URL forces https and strips utm_ tracking parameters.
func (n *Normalizer) URL(raw string) (string, error) {
	u, err := sanitizeURL(raw)
	if err != nil {
		return "", invalidf("%s", err.Error())
	}
	stripTracking(u)
	return u.String(), nil
}

func (n *Normalizer) hasMXRecord(ctx context.Context, domain string) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	records, err := n.dnsResolver.LookupMX(ctx, domain)
	return err == nil && len(records) > 0
}

func sanitizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, errors.New("invalid url")
	}
	u.Scheme = "https"
	return u, nil
}

func stripTracking(u *url.URL) {
	if u == nil {
		return
	}
	query := u.Query()
	changed := false
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), trackingPrefix) {
			query.Del(key)
			changed = true
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
}

func normalizePhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if region == "" {
		region = defaultPhoneRegion
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}

type systemDNSResolver struct{}

func (systemDNSResolver) LookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	return net.DefaultResolver.LookupMX(ctx, domain)
}
