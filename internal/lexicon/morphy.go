package lexicon

import "strings"

type detachment struct {
	suffix      string
	replacement string
}

// Inflectional suffix rules per part of speech, applied in order.
var detachmentRules = map[string][]detachment{
	Noun: {
		{"s", ""},
		{"ses", "s"},
		{"ves", "f"},
		{"xes", "x"},
		{"zes", "z"},
		{"ches", "ch"},
		{"shes", "sh"},
		{"men", "man"},
		{"ies", "y"},
	},
	Verb: {
		{"s", ""},
		{"ies", "y"},
		{"es", "e"},
		{"es", ""},
		{"ed", "e"},
		{"ed", ""},
		{"ing", "e"},
		{"ing", ""},
	},
	Adjective: {
		{"er", ""},
		{"est", ""},
		{"er", "e"},
		{"est", "e"},
	},
	Adverb: {},
}

// Morphy returns the base forms of form for pos that exist in the lexicon.
// The form itself is included when it is a known lemma. The result is
// empty when nothing matches.
func (l *Lexicon) Morphy(form, pos string) []string {
	pos = indexPOS(pos)

	var forms []string
	seen := make(map[string]bool)
	add := func(candidate string) {
		if candidate == "" || seen[candidate] {
			return
		}
		seen[candidate] = true
		if l.has(pos, candidate) {
			forms = append(forms, candidate)
		}
	}

	add(form)
	for _, rule := range detachmentRules[pos] {
		if strings.HasSuffix(form, rule.suffix) {
			add(strings.TrimSuffix(form, rule.suffix) + rule.replacement)
		}
	}
	return forms
}
