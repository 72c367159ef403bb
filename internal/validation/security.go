// Package validation guards the one piece of user input that reaches an
// outbound network decision: an iframe integration's src URL, which a
// console browser will load directly. It blocks SSRF-style targets
// (cloud metadata endpoints, the Kubernetes API, loopback/private ranges)
// the same way before the manifest is ever rendered.
package validation

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
)

var (
	// shellMetacharacters detects characters with no legitimate place in a
	// URL but that show up in injection attempts against anything downstream
	// that might shell out with this value.
	shellMetacharacters = regexp.MustCompile("[;&|$`(){}\\[\\]<>!#*?~\n\r\\\\]")

	// blockedHosts are never valid iframe targets regardless of scheme.
	blockedHosts = []string{
		"169.254.169.254",          // AWS metadata
		"169.254.170.2",            // AWS ECS metadata
		"metadata.google.internal", // GCP metadata
		"metadata.goog",            // GCP metadata alternative
		"kubernetes",               // K8s API
		"kubernetes.default",       // K8s API
		"kubernetes.default.svc",   // K8s API
		"localhost",                // Localhost
		"127.0.0.1",                // Loopback
		"0.0.0.0",                  // All interfaces
		"::1",                      // IPv6 loopback
		"10.96.0.1",                // Common K8s API ClusterIP
	}

	// blockedIPRanges are never valid iframe targets, whether given directly
	// or reached by resolving a hostname (defense against DNS rebinding).
	blockedIPRanges = []string{
		"169.254.0.0/16", // Link-local (metadata endpoints)
		"127.0.0.0/8",    // Loopback
		"10.0.0.0/8",     // Private
		"172.16.0.0/12",  // Private
		"192.168.0.0/16", // Private
		"100.64.0.0/10",  // Carrier-grade NAT
	}

	parsedBlockedRanges []*net.IPNet
)

func init() {
	for _, cidr := range blockedIPRanges {
		_, network, err := net.ParseCIDR(cidr)
		if err == nil {
			parsedBlockedRanges = append(parsedBlockedRanges, network)
		}
	}
}

// ValidationError is a field-scoped validation failure with a stable code,
// so callers (and tests) can branch on the failure kind without parsing
// the message.
type ValidationError struct {
	Field   string
	Message string
	Code    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message, code string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Code: code}
}

// ValidateIframeSrc validates an IframeIntegrationSpec.Src value before it's
// rendered into a manifest. It rejects malformed URLs, disallowed schemes,
// shell metacharacters, and hosts or resolved IPs that fall inside a
// blocked range (cloud metadata services, the Kubernetes API, loopback and
// private address space).
func ValidateIframeSrc(src string) error {
	if src == "" {
		return newValidationError("integration.iframe.src", "src is required", "SRC_REQUIRED")
	}
	if len(src) > 2048 {
		return newValidationError("integration.iframe.src", "src exceeds maximum length of 2048 characters", "SRC_TOO_LONG")
	}
	if shellMetacharacters.MatchString(src) {
		return newValidationError("integration.iframe.src", "src contains invalid characters", "SRC_INJECTION")
	}

	parsed, err := url.Parse(src)
	if err != nil {
		return newValidationError("integration.iframe.src", fmt.Sprintf("invalid URL: %v", err), "SRC_PARSE_ERROR")
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "https" {
		if scheme == "http" && (strings.HasSuffix(parsed.Host, ".svc.cluster.local") || strings.HasSuffix(parsed.Host, ".svc")) {
			// Allowed: an in-cluster console extension pointing at another
			// in-cluster service over plain HTTP.
		} else {
			return newValidationError("integration.iframe.src",
				fmt.Sprintf("scheme %q is not allowed (use https, or http for *.svc.cluster.local)", scheme),
				"SRC_INVALID_SCHEME")
		}
	}

	host := parsed.Hostname()
	hostLower := strings.ToLower(host)
	for _, blocked := range blockedHosts {
		if hostLower == blocked || strings.HasSuffix(hostLower, "."+blocked) {
			return newValidationError("integration.iframe.src",
				fmt.Sprintf("host %q is blocked", host), "SRC_BLOCKED_HOST")
		}
	}

	if ip := net.ParseIP(host); ip != nil {
		if blockedIP(ip) {
			return newValidationError("integration.iframe.src",
				fmt.Sprintf("IP %q is in a blocked range", host), "SRC_BLOCKED_IP")
		}
		return nil
	}

	ips, err := net.LookupIP(host)
	if err == nil {
		for _, ip := range ips {
			if blockedIP(ip) {
				return newValidationError("integration.iframe.src",
					fmt.Sprintf("host %q resolves to blocked IP %q", host, ip), "SRC_BLOCKED_RESOLVED_IP")
			}
		}
	}
	return nil
}

func blockedIP(ip net.IP) bool {
	for _, network := range parsedBlockedRanges {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
