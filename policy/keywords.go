package policy

import (
	"regexp"
	"strings"
)

var termSplitRe = regexp.MustCompile(`[\/\-\s]+`)

// SearchKeywords derives the lower-cased, de-duplicated keyword set used to
// check plan coverage of a policy: declared compliance keywords, plus terms
// longer than three characters from the policy name and governance area.
func SearchKeywords(p Policy) []string {
	var out []string
	seen := make(map[string]bool)

	add := func(kw string) {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			return
		}
		seen[kw] = true
		out = append(out, kw)
	}

	for _, kw := range p.Keywords {
		add(kw)
	}
	for _, term := range termSplitRe.Split(p.Name, -1) {
		if len(term) > 3 {
			add(term)
		}
	}
	for _, term := range termSplitRe.Split(p.GovernanceArea, -1) {
		if len(term) > 3 {
			add(term)
		}
	}
	return out
}
