// Package validators provides reusable per-field validators for form inputs.
//
// Every validator has the domain.ValidationFunc shape: it receives the field value and the
// bound item and returns an error message or "". Empty values are left to the required
// rule and always pass here.
package validators

import (
	"strings"

	"github.com/aretw0/formwizard/pkg/i18n"
)

const (
	lowerAlphaNumeric = "abcdefghijklmnopqrstuvwxyz1234567890"
	lowerAlpha        = "abcdefghijklmnopqrstuvwxyz"
)

// nameRule pairs a validator tag with what is needed to explain a failure.
type nameRule struct {
	tag     string
	max     int
	charset string
	first   string
}

var (
	dns1123Subdomain = nameRule{
		tag:     "max=253,lowercase,hostname_rfc1123,endsnotwith=-,endsnotwith=.",
		max:     253,
		charset: lowerAlphaNumeric + "-.",
		first:   lowerAlphaNumeric,
	}
	rfc1123Label = nameRule{
		tag:     "max=63,lowercase,hostname_rfc1123,excludes=.,endsnotwith=-",
		max:     63,
		charset: lowerAlphaNumeric + "-",
		first:   lowerAlphaNumeric,
	}
	rfc1035Label = nameRule{
		tag:     "max=63,dns_rfc1035_label",
		max:     63,
		charset: lowerAlphaNumeric + "-",
		first:   lowerAlpha,
	}
)

// Kubernetes validates object names with messages from a localization table.
type Kubernetes struct {
	strings *i18n.Strings
}

// NewKubernetes binds the name validators to s. A nil table means the defaults.
func NewKubernetes(s *i18n.Strings) *Kubernetes {
	if s == nil {
		s = i18n.Default()
	}
	return &Kubernetes{strings: s}
}

var defaultKubernetes = NewKubernetes(nil)

// KubernetesResourceName validates a DNS-1123 subdomain (most resource names).
func KubernetesResourceName(value any, item any) string {
	return defaultKubernetes.ResourceName(value, item)
}

// KubernetesLabelRFC1123 validates an RFC 1123 label (namespaces, services).
func KubernetesLabelRFC1123(value any, item any) string {
	return defaultKubernetes.LabelRFC1123(value, item)
}

// KubernetesLabelRFC1035 validates an RFC 1035 label, which must start with a letter.
func KubernetesLabelRFC1035(value any, item any) string {
	return defaultKubernetes.LabelRFC1035(value, item)
}

// ResourceName validates a DNS-1123 subdomain.
func (k *Kubernetes) ResourceName(value any, _ any) string {
	return k.check(value, dns1123Subdomain, k.strings.LowercaseAlphaNumDashDot)
}

// LabelRFC1123 validates an RFC 1123 label.
func (k *Kubernetes) LabelRFC1123(value any, _ any) string {
	return k.check(value, rfc1123Label, k.strings.LowercaseAlphaNumDash)
}

// LabelRFC1035 validates an RFC 1035 label.
func (k *Kubernetes) LabelRFC1035(value any, _ any) string {
	return k.check(value, rfc1035Label, k.strings.LowercaseAlphaNumDash)
}

func (k *Kubernetes) check(value any, rule nameRule, charsetMsg string) string {
	s, ok := value.(string)
	if !ok || s == "" {
		return ""
	}
	fe, err := varTag(s, rule.tag)
	if err != nil {
		return err.Error()
	}
	if fe == nil {
		return ""
	}

	// The library only names the failing tag; pick the most specific message.
	switch {
	case fe.Tag() == "max":
		return k.strings.MaxLength(rule.max)
	case strings.ContainsFunc(s, func(r rune) bool { return !strings.ContainsRune(rule.charset, r) }):
		return charsetMsg
	case !strings.ContainsRune(rule.first, rune(s[0])):
		if rule.first == lowerAlpha {
			return k.strings.StartAlphabetic
		}
		return k.strings.StartAlphaNumeric
	case !strings.ContainsRune(lowerAlphaNumeric, rune(s[len(s)-1])):
		return k.strings.EndAlphaNumeric
	}
	return k.strings.InvalidResourceName
}
