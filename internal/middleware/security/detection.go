package security

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
)

// DetectionMetrics counts flagged requests for the /metrics endpoint.
type DetectionMetrics struct {
	SuspiciousRequests int64
	InvalidIPAttempts  int64
}

// Detector flags requests that look like scanner traffic rather than
// browser traffic, and resolves real client IPs behind trusted proxies
// for the sign-in rate limiter.
type Detector struct {
	metrics        *DetectionMetrics
	trustedProxies []*net.IPNet
}

// scanPatterns are path/query fragments a public banking site gets
// scanned for. Matches are logged and counted, never blocked.
var scanPatterns = []string{
	"../", "..\\", ".env", ".git", ".ssh",
	"wp-admin", "phpmyadmin", "admin.php", "config.php",
	"<script", "javascript:", "union select", "etc/passwd",
}

// NewDetector creates a detector trusting the usual private proxy
// ranges for forwarded-header resolution.
func NewDetector() *Detector {
	return &Detector{
		metrics: &DetectionMetrics{},
		trustedProxies: []*net.IPNet{
			parseCIDR("127.0.0.0/8"),
			parseCIDR("10.0.0.0/8"),
			parseCIDR("172.16.0.0/12"),
			parseCIDR("192.168.0.0/16"),
		},
	}
}

func parseCIDR(cidr string) *net.IPNet {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(fmt.Sprintf("failed to parse trusted proxy CIDR %s: %v", cidr, err))
	}
	return network
}

// DetectSuspiciousRequest reports whether the request matches a known
// scan pattern. User agents are deliberately not inspected; health
// checks and uptime monitors use the same agents scanners do.
func (d *Detector) DetectSuspiciousRequest(r *http.Request) bool {
	suspicious := false

	path := strings.ToLower(r.URL.Path)
	query := strings.ToLower(r.URL.RawQuery)
	// Scanners hide payloads behind percent and plus encoding.
	if decoded, err := url.QueryUnescape(query); err == nil {
		query = decoded
	}
	for _, pattern := range scanPatterns {
		if strings.Contains(path, pattern) || strings.Contains(query, pattern) {
			suspicious = true
			break
		}
	}

	// Methods no page or partial in this app ever uses.
	switch r.Method {
	case "TRACE", "TRACK", "CONNECT":
		suspicious = true
	}

	// The longest legitimate URL here is an insights filter query.
	if len(r.URL.String()) > 2048 {
		suspicious = true
	}

	// An implausibly long proxy chain suggests header manipulation.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if strings.Count(xff, ",") > 5 {
			suspicious = true
		}
	}

	if suspicious {
		atomic.AddInt64(&d.metrics.SuspiciousRequests, 1)
	}

	return suspicious
}

// ExtractClientIP resolves the real client IP. Forwarded headers are
// honored only when the direct peer is a trusted proxy; otherwise a
// client could spoof its way past the sign-in rate limiter.
func (d *Detector) ExtractClientIP(r *http.Request) string {
	directIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		directIP = r.RemoteAddr
	}

	parsedDirectIP := net.ParseIP(directIP)
	if parsedDirectIP == nil {
		atomic.AddInt64(&d.metrics.InvalidIPAttempts, 1)
		return directIP
	}

	if d.isTrustedProxy(parsedDirectIP) {
		// X-Forwarded-For lists the original client first.
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			clientIP := strings.TrimSpace(strings.Split(xff, ",")[0])
			if net.ParseIP(clientIP) != nil {
				return clientIP
			}
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			if net.ParseIP(xri) != nil {
				return xri
			}
		}
	}

	return directIP
}

func (d *Detector) isTrustedProxy(ip net.IP) bool {
	for _, network := range d.trustedProxies {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// GetMetrics returns a snapshot of the detection counters.
func (d *Detector) GetMetrics() DetectionMetrics {
	return DetectionMetrics{
		SuspiciousRequests: atomic.LoadInt64(&d.metrics.SuspiciousRequests),
		InvalidIPAttempts:  atomic.LoadInt64(&d.metrics.InvalidIPAttempts),
	}
}

// AddTrustedProxy extends the trusted proxy set, for deployments
// behind an additional load balancer tier.
func (d *Detector) AddTrustedProxy(cidr string) error {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		return fmt.Errorf("invalid CIDR %s: %w", cidr, err)
	}
	d.trustedProxies = append(d.trustedProxies, network)
	return nil
}
