package catalog

import "strings"

// RootDomain is the domain every flat catalog file is stored under and the
// final step of every domain fallback chain.
const RootDomain = "GLOBAL"

// NormalizeDomain trims a domain path; an empty or blank domain becomes RootDomain.
func NormalizeDomain(domain string) string {
	d := strings.TrimSpace(domain)
	if d == "" {
		return RootDomain
	}
	return d
}

// domainChain builds the lookup order from the most specific domain up to
// RootDomain. "GLOBAL.DATABASE.ORACLE" yields ["GLOBAL.DATABASE.ORACLE",
// "GLOBAL.DATABASE", "GLOBAL"].
func domainChain(domain string) []string {
	domain = NormalizeDomain(domain)
	if domain == RootDomain {
		return []string{RootDomain}
	}

	parts := strings.Split(domain, ".")
	chain := make([]string, 0, len(parts)+1)
	for i := len(parts); i > 0; i-- {
		chain = append(chain, strings.Join(parts[:i], "."))
	}
	if chain[len(chain)-1] != RootDomain {
		chain = append(chain, RootDomain)
	}
	return chain
}
