package validation

import (
	"regexp"

	"github.com/miekg/dns"
)

// Validator reports whether a hostname may be stored.
type Validator func(hostname string) bool

// Default is the validator used by the whitelist screen and commands.
var Default Validator = IsValidHostname

// RFC 1123 host names: dot separated labels of letters, digits and inner hyphens.
var hostnamePattern = regexp.MustCompile(`^(([a-zA-Z0-9]|[a-zA-Z0-9][a-zA-Z0-9\-]*[a-zA-Z0-9])\.)*([a-zA-Z0-9]|[a-zA-Z0-9][a-zA-Z0-9\-]*[a-zA-Z0-9])$`)

// IsValidHostname checks hostname syntax and DNS length limits
// (63 octets per label, 255 per name).
func IsValidHostname(hostname string) bool {
	if !hostnamePattern.MatchString(hostname) {
		return false
	}
	_, ok := dns.IsDomainName(hostname)
	return ok
}
