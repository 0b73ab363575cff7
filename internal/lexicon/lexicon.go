// Package lexicon provides a WordNet-style lexical database and the keyword
// expansion built on top of it.
//
// A Lexicon is immutable once loaded and can be shared freely between
// goroutines. The embedded database is loaded at most once per process.
package lexicon

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	apperrors "github.com/gcbaptista/go-ats-score/internal/errors"
)

//go:embed data/synsets.yaml
var embeddedSynsets []byte

// Part-of-speech tags, as used in synset identifiers.
const (
	Noun         = "n"
	Verb         = "v"
	Adjective    = "a"
	AdjSatellite = "s"
	Adverb       = "r"
)

// Synset is one sense of a word together with all lemmas that share it.
type Synset struct {
	ID     string   `yaml:"id" json:"id"`
	Lemmas []string `yaml:"lemmas" json:"lemmas"`
}

// POS returns the part-of-speech segment of the synset ID ("programmer.n.01" -> "n").
func (s Synset) POS() string {
	parts := strings.Split(s.ID, ".")
	if len(parts) < 3 {
		return ""
	}
	return parts[len(parts)-2]
}

type synsetFile struct {
	Synsets []Synset `yaml:"synsets"`
}

// Lexicon maps word forms to synsets.
type Lexicon struct {
	synsets []Synset
	// index maps "pos:lemma" to positions in synsets, in file order
	index map[string][]int
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
	defaultErr  error
)

// Default returns the lexicon built from the embedded database.
// The database is parsed on the first call only.
func Default() (*Lexicon, error) {
	defaultOnce.Do(func() {
		defaultLex, defaultErr = Load(bytes.NewReader(embeddedSynsets))
	})
	return defaultLex, defaultErr
}

// LoadFile loads a lexicon from a synset file on disk.
// Files ending in ".pl" are read as the WordNet Prolog export (wn_s.pl), so a
// full WordNet database can replace the embedded one; anything else is YAML.
func LoadFile(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", apperrors.ErrLexiconUnavailable, path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".pl") {
		return LoadProlog(f)
	}
	return Load(f)
}

// Load parses a YAML synset document and builds the lemma index.
func Load(r io.Reader) (*Lexicon, error) {
	var file synsetFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: decoding synsets: %v", apperrors.ErrLexiconUnavailable, err)
	}

	return build(file.Synsets)
}

func build(synsets []Synset) (*Lexicon, error) {
	if len(synsets) == 0 {
		return nil, fmt.Errorf("%w: no synsets defined", apperrors.ErrLexiconUnavailable)
	}

	lex := &Lexicon{
		synsets: make([]Synset, 0, len(synsets)),
		index:   make(map[string][]int),
	}
	seen := make(map[string]bool, len(synsets))

	for i, s := range synsets {
		if err := validateSynset(s); err != nil {
			return nil, fmt.Errorf("%w: synset #%d: %v", apperrors.ErrLexiconUnavailable, i, err)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("%w: duplicate synset id '%s'", apperrors.ErrLexiconUnavailable, s.ID)
		}
		seen[s.ID] = true

		pos := indexPOS(s.POS())
		idx := len(lex.synsets)
		lex.synsets = append(lex.synsets, s)
		for _, lemma := range s.Lemmas {
			key := indexKey(pos, strings.ToLower(lemma))
			lex.index[key] = append(lex.index[key], idx)
		}
	}

	return lex, nil
}

func validateSynset(s Synset) error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("id is required")
	}
	switch s.POS() {
	case Noun, Verb, Adjective, AdjSatellite, Adverb:
	default:
		return fmt.Errorf("id '%s' has no valid part of speech", s.ID)
	}
	if len(s.Lemmas) == 0 {
		return fmt.Errorf("synset '%s' has no lemmas", s.ID)
	}
	for _, lemma := range s.Lemmas {
		if strings.TrimSpace(lemma) == "" {
			return fmt.Errorf("synset '%s' has an empty lemma", s.ID)
		}
	}
	return nil
}

// Satellite adjectives share the adjective index.
func indexPOS(pos string) string {
	if pos == AdjSatellite {
		return Adjective
	}
	return pos
}

func indexKey(pos, lemma string) string {
	return pos + ":" + lemma
}

// Size returns the number of synsets in the lexicon.
func (l *Lexicon) Size() int {
	return len(l.synsets)
}

func (l *Lexicon) has(pos, form string) bool {
	_, ok := l.index[indexKey(pos, form)]
	return ok
}

// Synsets returns every synset of word across all parts of speech.
// Inflected forms are reduced to their base forms first, so "developers"
// finds the synsets of "developer".
func (l *Lexicon) Synsets(word string) []Synset {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil
	}
	// WordNet stores multiword lemmas with underscores
	word = strings.ReplaceAll(word, " ", "_")

	var result []Synset
	added := make(map[int]bool)
	for _, pos := range []string{Noun, Verb, Adjective, Adverb} {
		for _, form := range l.Morphy(word, pos) {
			for _, idx := range l.index[indexKey(pos, form)] {
				if added[idx] {
					continue
				}
				added[idx] = true
				result = append(result, l.synsets[idx])
			}
		}
	}
	return result
}

// Lemmas returns the distinct lemma names of every synset of word, sorted.
func (l *Lexicon) Lemmas(word string) []string {
	set := make(map[string]struct{})
	for _, s := range l.Synsets(word) {
		for _, lemma := range s.Lemmas {
			set[lemma] = struct{}{}
		}
	}

	lemmas := make([]string, 0, len(set))
	for lemma := range set {
		lemmas = append(lemmas, lemma)
	}
	sort.Strings(lemmas)
	return lemmas
}

// Expand returns the unique tokens together with every lemma of every
// synset reachable from each token. Tokens without synsets contribute
// only themselves.
func (l *Lexicon) Expand(tokens []string) map[string]struct{} {
	expanded := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		expanded[token] = struct{}{}
	}

	// Look up each distinct token once
	for token := range uniqueTokens(tokens) {
		for _, s := range l.Synsets(token) {
			for _, lemma := range s.Lemmas {
				expanded[lemma] = struct{}{}
			}
		}
	}
	return expanded
}

func uniqueTokens(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
