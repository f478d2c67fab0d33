// Package classifier decides whether a URL likely points to a CTI report.
// The decision gates archiving only; traversal is never conditioned on it so
// the crawl can reach reports nested under index and listing pages.
package classifier

import (
	"net/url"
	"regexp"
	"strings"
)

// Match is the tagged result of classifying a URL. Rule names the heuristic
// that fired, for logs and tests; it is empty when Report is false.
type Match struct {
	Report bool
	Rule   string
}

// reportPatterns are matched case-insensitively anywhere in the URL string.
var reportPatterns = []*regexp.Regexp{
	regexp.MustCompile(`report`),
	regexp.MustCompile(`analysis`),
	regexp.MustCompile(`threat`),
	regexp.MustCompile(`malware`),
	regexp.MustCompile(`apt`),
	regexp.MustCompile(`intelligence`),
	regexp.MustCompile(`advisory`),
	regexp.MustCompile(`bulletin`),
	regexp.MustCompile(`whitepaper`),
	regexp.MustCompile(`\.pdf$`),
	regexp.MustCompile(`\.docx?$`),
	regexp.MustCompile(`\.txt$`),
	regexp.MustCompile(`\.html?$`),
}

// knownSources are vendor and research-blog substrings matched against the host.
var knownSources = []string{
	"mandiant", "fireeye", "crowdstrike", "paloalto", "unit42",
	"securelist", "kaspersky", "symantec", "broadcom",
	"microsoft", "securitycenter", "blog", "research",
	"threatpost", "threatconnect", "recordedfuture",
	"alienvault", "otx", "virustotal", "ibm", "x-force",
	"proofpoint", "trendmicro", "talos", "cisco",
}

// Classify reports whether rawURL likely points to a CTI report and which
// rule matched. It is pure: no I/O, no crawl state.
func Classify(rawURL string) Match {
	lower := strings.ToLower(rawURL)

	for _, p := range reportPatterns {
		if p.MatchString(lower) {
			return Match{Report: true, Rule: "pattern:" + p.String()}
		}
	}

	if u, err := url.Parse(rawURL); err == nil {
		host := strings.ToLower(u.Hostname())
		for _, s := range knownSources {
			if strings.Contains(host, s) {
				return Match{Report: true, Rule: "source:" + s}
			}
		}
	}

	return Match{}
}

// IsReport is a convenience wrapper for call sites that only need the boolean.
func IsReport(rawURL string) bool {
	return Classify(rawURL).Report
}
