package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	apperrors "github.com/gcbaptista/go-ats-score/internal/errors"
)

// LoadProlog builds a lexicon from the WordNet Prolog synset file (wn_s.pl).
// Each line has the form
//
//	s(synset_id,w_num,'word',ss_type,sense_number,tag_count).
//
// Lines for the same synset_id become one Synset, with lemmas in w_num order.
// The synset is named after its first lemma, e.g. "programmer.n.01".
func LoadProlog(r io.Reader) (*Lexicon, error) {
	type group struct {
		id     string
		lemmas []string
	}

	var order []string
	groups := make(map[string]*group)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "s(") {
			continue
		}

		fact, err := parseSynsetFact(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", apperrors.ErrLexiconUnavailable, lineNo, err)
		}

		g, ok := groups[fact.offset]
		if !ok {
			g = &group{id: fmt.Sprintf("%s.%s.%02d", fact.word, fact.pos, fact.sense)}
			groups[fact.offset] = g
			order = append(order, fact.offset)
		}
		g.lemmas = append(g.lemmas, fact.word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading prolog synsets: %v", apperrors.ErrLexiconUnavailable, err)
	}

	synsets := make([]Synset, 0, len(order))
	for _, offset := range order {
		g := groups[offset]
		synsets = append(synsets, Synset{ID: g.id, Lemmas: g.lemmas})
	}
	return build(synsets)
}

type synsetFact struct {
	offset string
	word   string
	pos    string
	sense  int
}

func parseSynsetFact(line string) (synsetFact, error) {
	var fact synsetFact

	body, ok := strings.CutPrefix(line, "s(")
	if !ok {
		return fact, fmt.Errorf("not a synset fact")
	}
	body, ok = strings.CutSuffix(body, ").")
	if !ok {
		return fact, fmt.Errorf("unterminated fact")
	}

	// synset_id and w_num precede the quoted word
	offset, rest, ok := strings.Cut(body, ",")
	if !ok {
		return fact, fmt.Errorf("missing fields")
	}
	_, rest, ok = strings.Cut(rest, ",")
	if !ok || !strings.HasPrefix(rest, "'") {
		return fact, fmt.Errorf("missing quoted word")
	}

	word, rest, err := readQuoted(rest[1:])
	if err != nil {
		return fact, err
	}

	fields := strings.Split(strings.TrimPrefix(rest, ","), ",")
	if len(fields) < 2 {
		return fact, fmt.Errorf("missing part of speech or sense number")
	}
	sense, err := strconv.Atoi(fields[1])
	if err != nil {
		return fact, fmt.Errorf("invalid sense number %q", fields[1])
	}

	fact.offset = offset
	fact.word = strings.ReplaceAll(word, " ", "_")
	fact.pos = fields[0]
	fact.sense = sense
	return fact, nil
}

// readQuoted reads a single-quoted Prolog atom whose opening quote has been
// consumed. A doubled quote stands for one apostrophe.
func readQuoted(s string) (string, string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\'' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 < len(s) && s[i+1] == '\'' {
			b.WriteByte('\'')
			i++
			continue
		}
		return b.String(), s[i+1:], nil
	}
	return "", "", fmt.Errorf("unterminated quoted word")
}
