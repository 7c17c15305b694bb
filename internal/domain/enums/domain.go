package enums

import "strings"

// Domain is the matching key shared by startup requests and incubator
// specializations.
type Domain string

const (
	DomainTechnology Domain = "Technology"
	DomainHealthcare Domain = "Healthcare"
	DomainFinance    Domain = "Finance"
	DomainEcommerce  Domain = "E-commerce"
	DomainEdTech     Domain = "EdTech"
	DomainClimaTech  Domain = "ClimaTech"
	DomainAgriTech   Domain = "AgriTech"
	DomainAIML       Domain = "AI/ML"
	DomainBlockchain Domain = "Blockchain"
	DomainOther      Domain = "Other"
)

var domains = map[Domain]struct{}{
	DomainTechnology: {},
	DomainHealthcare: {},
	DomainFinance:    {},
	DomainEcommerce:  {},
	DomainEdTech:     {},
	DomainClimaTech:  {},
	DomainAgriTech:   {},
	DomainAIML:       {},
	DomainBlockchain: {},
	DomainOther:      {},
}

func ParseDomain(raw string) (Domain, bool) {
	d := Domain(strings.TrimSpace(raw))
	_, ok := domains[d]
	return d, ok
}
