package domain

import "strings"

// DistrictFromAddress extracts the district segment from a free-text delivery
// address of the usual "street, ward, district, city" shape. Addresses with
// fewer than three comma-separated segments yield "". The parse is deliberately
// lenient: callers filter the result against the configured inner-area set.
func DistrictFromAddress(address string) string {
	segments := strings.Split(strings.TrimSpace(address), ",")
	if len(segments) < 3 {
		return ""
	}
	return strings.TrimSpace(segments[2])
}

// AddressLabel returns the short display label for an address: its first
// comma-separated segment, trimmed. Used as the waypoint marker title.
func AddressLabel(address string) string {
	segment, _, _ := strings.Cut(address, ",")
	return strings.TrimSpace(segment)
}
