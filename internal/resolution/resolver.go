package resolution

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Match scoring. A keyword of n words scores scoreExact*n on an exact match
// and scoreFuzzy*n when at least one word needed edit-distance tolerance.
// minConfidence is the floor below which a candidate is never accepted.
const (
	scoreExact    = 10
	scoreFuzzy    = 7
	minConfidence = 7
)

// ResolvedElement is one element the resolver matched, with the quantity
// parsed from the text (default 1).
type ResolvedElement struct {
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

// VariantOption is one selectable variant of a base element.
type VariantOption struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// VariantQuestion pauses resolution of a base element until the caller
// supplies an answer via SelectVariant. The engine never guesses a variant.
type VariantQuestion struct {
	BaseCode string          `json:"base_code"`
	BaseName string          `json:"base_name"`
	Options  []VariantOption `json:"options"`
}

// Resolution is the outcome of mapping free text onto the element catalog.
type Resolution struct {
	Resolved        []ResolvedElement `json:"resolved"`
	VariantsPending []VariantQuestion `json:"variants_pending"`
	Unmatched       []string          `json:"unmatched"`
}

// Request converts the resolved elements into the map form Select consumes.
func (r Resolution) Request() map[string]int {
	out := make(map[string]int, len(r.Resolved))
	for _, el := range r.Resolved {
		out[el.Code] = el.Quantity
	}
	return out
}

var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeText lowercases and strips diacritics so "escalera mecánica" and
// "ESCALERA MECANICA" compare equal.
func normalizeText(s string) string {
	lower := strings.ToLower(s)
	folded, _, err := transform.String(foldAccents, lower)
	if err != nil {
		return lower
	}
	return folded
}

type token struct {
	text    string
	claimed bool
}

func tokenize(text string) []token {
	fields := strings.FieldsFunc(normalizeText(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]token, len(fields))
	for i, f := range fields {
		tokens[i] = token{text: f}
	}
	return tokens
}

// Spanish filler words ignored when reporting unmatched fragments.
var stopwords = map[string]bool{
	"a": true, "al": true, "con": true, "de": true, "del": true, "el": true,
	"en": true, "eso": true, "esto": true, "hola": true, "la": true, "las": true,
	"lo": true, "los": true, "me": true, "mi": true, "necesito": true,
	"para": true, "poner": true, "por": true, "quiero": true, "tambien": true,
	"tengo": true, "un": true, "una": true, "unas": true, "unos": true,
	"y": true, "instalar": true, "homologar": true, "llevar": true,
}

var numberWords = map[string]int{
	"un": 1, "una": 1, "uno": 1, "dos": 2, "tres": 3, "cuatro": 4,
	"cinco": 5, "seis": 6, "siete": 7, "ocho": 8, "nueve": 9, "diez": 10,
}

func parseNumber(word string) (int, bool) {
	if n, err := strconv.Atoi(word); err == nil && n > 0 {
		return n, true
	}
	if n, ok := numberWords[word]; ok {
		return n, true
	}
	return 0, false
}

// wordMatches compares one keyword word against one token, tolerating common
// typos on longer words.
func wordMatches(keyword, tok string) (exact, fuzzy bool) {
	if keyword == tok {
		return true, false
	}
	switch {
	case len(keyword) >= 8:
		return false, levenshtein.ComputeDistance(keyword, tok) <= 2
	case len(keyword) >= 5:
		return false, levenshtein.ComputeDistance(keyword, tok) <= 1
	default:
		return false, false
	}
}

// candidate is one keyword hit on a token span.
type candidate struct {
	elementCode string
	start, end  int
	score       int
}

// Resolve maps free text onto the snapshot's element catalog. Matching is
// case- and accent-insensitive and tolerates small typos. Elements whose base
// has registered variants are not guessed: they surface as pending variant
// questions instead. Fragments matching nothing are reported, never dropped.
// Resolve is pure over the snapshot and safe for concurrent use.
func Resolve(snap *Snapshot, freeText string) Resolution {
	tokens := tokenize(freeText)
	if len(tokens) == 0 {
		return Resolution{}
	}

	candidates := collectCandidates(snap, tokens)
	// Highest score first; ties broken by earliest span, widest span, then
	// element code so resolution never depends on map iteration order.
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.start != b.start {
			return a.start < b.start
		}
		if a.end != b.end {
			return a.end > b.end
		}
		return a.elementCode < b.elementCode
	})

	var res Resolution
	quantities := map[string]int{}
	accepted := map[string]bool{}
	pendingBases := map[string]bool{}

	for _, cand := range candidates {
		if cand.score < minConfidence || spanClaimed(tokens, cand) {
			continue
		}
		claimSpan(tokens, cand)

		el := snap.Element(cand.elementCode)
		qty := adjacentQuantity(tokens, cand)

		// A hit on a base element with registered variants pauses for a
		// clarifying question; a hit on a concrete variant resolves directly.
		if variants := snap.Variants(el.Code); len(variants) > 0 {
			if !pendingBases[el.Code] {
				pendingBases[el.Code] = true
				res.VariantsPending = append(res.VariantsPending, variantQuestion(el, variants))
			}
			continue
		}

		if accepted[el.Code] {
			if qty > quantities[el.Code] {
				quantities[el.Code] = qty
			}
			continue
		}
		accepted[el.Code] = true
		quantities[el.Code] = qty
		res.Resolved = append(res.Resolved, ResolvedElement{Code: el.Code})
	}

	for i := range res.Resolved {
		res.Resolved[i].Quantity = quantities[res.Resolved[i].Code]
	}
	res.VariantsPending = dropAnsweredQuestions(snap, res.VariantsPending, res.Resolved)
	res.Unmatched = unmatchedFragments(tokens)
	return res
}

// dropAnsweredQuestions removes pending questions whose base already has a
// concretely resolved variant in the same text ("suspension trasera" hits
// both the base keyword and the variant keyword; the variant answers the
// question before it is ever asked).
func dropAnsweredQuestions(snap *Snapshot, pending []VariantQuestion, resolved []ResolvedElement) []VariantQuestion {
	if len(pending) == 0 {
		return pending
	}
	answered := map[string]bool{}
	for _, el := range resolved {
		if e := snap.Element(el.Code); e != nil && e.BaseCode != "" {
			answered[e.BaseCode] = true
		}
	}
	out := pending[:0]
	for _, q := range pending {
		if !answered[q.BaseCode] {
			out = append(out, q)
		}
	}
	return out
}

func collectCandidates(snap *Snapshot, tokens []token) []candidate {
	var out []candidate
	for _, code := range snap.ElementCodes() {
		el := snap.Element(code)
		for _, keyword := range el.Keywords {
			words := strings.Fields(normalizeText(keyword))
			if len(words) == 0 {
				continue
			}
			for start := 0; start+len(words) <= len(tokens); start++ {
				allExact := true
				matched := true
				for i, w := range words {
					exact, fuzzy := wordMatches(w, tokens[start+i].text)
					if !exact && !fuzzy {
						matched = false
						break
					}
					if !exact {
						allExact = false
					}
				}
				if !matched {
					continue
				}
				score := scoreFuzzy * len(words)
				if allExact {
					score = scoreExact * len(words)
				}
				out = append(out, candidate{
					elementCode: el.Code,
					start:       start,
					end:         start + len(words),
					score:       score,
				})
			}
		}
	}
	return out
}

func spanClaimed(tokens []token, c candidate) bool {
	for i := c.start; i < c.end; i++ {
		if tokens[i].claimed {
			return true
		}
	}
	return false
}

func claimSpan(tokens []token, c candidate) {
	for i := c.start; i < c.end; i++ {
		tokens[i].claimed = true
	}
}

// adjacentQuantity reads a number directly before or after the matched span
// ("2 placas solares", "placas solares x2" tokenizes the x away). Default 1.
func adjacentQuantity(tokens []token, c candidate) int {
	if c.start > 0 && !tokens[c.start-1].claimed {
		if n, ok := parseNumber(tokens[c.start-1].text); ok {
			tokens[c.start-1].claimed = true
			return n
		}
	}
	if c.end < len(tokens) && !tokens[c.end].claimed {
		if n, ok := parseNumber(tokens[c.end].text); ok {
			tokens[c.end].claimed = true
			return n
		}
	}
	return 1
}

func variantQuestion(base *Element, variants []*Element) VariantQuestion {
	q := VariantQuestion{BaseCode: base.Code, BaseName: base.Name}
	for _, v := range variants {
		label := v.VariantLabel
		if label == "" {
			label = v.Name
		}
		q.Options = append(q.Options, VariantOption{Code: v.Code, Label: label})
	}
	return q
}

func unmatchedFragments(tokens []token) []string {
	var fragments []string
	var run []string
	flush := func() {
		if len(run) > 0 {
			fragments = append(fragments, strings.Join(run, " "))
			run = nil
		}
	}
	for _, tok := range tokens {
		if tok.claimed || stopwords[tok.text] {
			flush()
			continue
		}
		if _, isNumber := parseNumber(tok.text); isNumber {
			flush()
			continue
		}
		run = append(run, tok.text)
	}
	flush()
	return fragments
}

// SelectVariant resolves a pending variant question: the answer text is
// matched against the base element's variant labels and keywords. It never
// re-invokes Resolve, so a clarification round can never spawn another full
// resolution, and calling it twice with the same inputs yields the same code.
func SelectVariant(snap *Snapshot, baseCode, answer string) (string, error) {
	variants := snap.Variants(baseCode)
	if len(variants) == 0 {
		return "", &UnknownBaseError{BaseCode: baseCode}
	}

	normalized := normalizeText(strings.TrimSpace(answer))
	options := make([]VariantOption, 0, len(variants))
	bestScore := 0
	bestCodes := []string{}

	for _, v := range variants {
		label := v.VariantLabel
		if label == "" {
			label = v.Name
		}
		options = append(options, VariantOption{Code: v.Code, Label: label})

		score := variantAnswerScore(normalized, v, label)
		if score > bestScore {
			bestScore = score
			bestCodes = []string{v.Code}
		} else if score == bestScore && score > 0 {
			bestCodes = append(bestCodes, v.Code)
		}
	}

	if bestScore < minConfidence || len(bestCodes) != 1 {
		return "", &AmbiguousVariantError{BaseCode: baseCode, Answer: answer, Options: options}
	}
	return bestCodes[0], nil
}

func variantAnswerScore(normalizedAnswer string, v *Element, label string) int {
	normalizedLabel := normalizeText(label)
	if normalizedAnswer == normalizedLabel {
		return scoreExact * 2
	}
	best := 0
	terms := append([]string{normalizedLabel}, v.Keywords...)
	answerWords := strings.Fields(normalizedAnswer)
	for _, term := range terms {
		for _, termWord := range strings.Fields(normalizeText(term)) {
			for _, answerWord := range answerWords {
				exact, fuzzy := wordMatches(termWord, answerWord)
				switch {
				case exact && best < scoreExact:
					best = scoreExact
				case fuzzy && best < scoreFuzzy:
					best = scoreFuzzy
				}
			}
		}
	}
	return best
}
