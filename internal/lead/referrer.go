package lead

import (
	"net/url"
	"strings"
)

// Referrer domains recognized as named traffic sources.
var knownReferrers = []string{"google", "facebook", "instagram", "linkedin", "twitter", "youtube"}

// ReferrerSource derives the traffic source for a submission. Explicit query
// parameters win over the referrer, and the first match is taken:
// source, utm_source, ref, then known referrer domains, then a generic
// "referral" for any other referrer, else "direct".
func ReferrerSource(query url.Values, referrer string) string {
	for _, param := range []string{"source", "utm_source", "ref"} {
		if v := query.Get(param); v != "" {
			return v
		}
	}
	if referrer != "" {
		lower := strings.ToLower(referrer)
		for _, known := range knownReferrers {
			if strings.Contains(lower, known) {
				return known
			}
		}
		return "referral"
	}
	return "direct"
}
