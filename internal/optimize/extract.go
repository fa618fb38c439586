package optimize

import "strings"

// Field markers in a candidate block. All are case-sensitive.
const (
	candidateMarker = "Candidate "
	strategyMarker  = "Strategy:"
	promptMarker    = "Prompt:"
	rationaleMarker = "Rationale:"
)

// UnknownLabel is assigned when a block's label cannot be read.
const UnknownLabel = "?"

// TokenCounter estimates the token count of a string.
type TokenCounter interface {
	Estimate(text string) int
}

// Extractor parses free-text model output into candidates.
type Extractor struct {
	tokens TokenCounter
}

// NewExtractor creates an extractor. A nil counter uses DefaultEstimator.
func NewExtractor(tokens TokenCounter) *Extractor {
	if tokens == nil {
		tokens = DefaultEstimator()
	}
	return &Extractor{tokens: tokens}
}

// ExtractCandidates parses raw with the default estimator.
func ExtractCandidates(raw string) []Candidate {
	return NewExtractor(nil).Extract(raw)
}

// Extract returns one candidate per "Candidate <LETTER>:" block, in the order
// the blocks appear in raw. It never fails: missing fields are left empty and
// text with no blocks yields an empty slice.
func (x *Extractor) Extract(raw string) []Candidate {
	candidates := []Candidate{}
	for _, block := range segmentBlocks(raw) {
		candidates = append(candidates, x.parseBlock(block))
	}
	return candidates
}

func (x *Extractor) parseBlock(block string) Candidate {
	strategy := fieldLine(block, strategyMarker)
	prompt := unquotePrompt(fieldLine(block, promptMarker))

	return Candidate{
		Label:         blockLabel(block),
		Strategy:      strategy,
		Technique:     strategy,
		Prompt:        prompt,
		Rationale:     fieldRest(block, rationaleMarker),
		TokenEstimate: x.tokens.Estimate(prompt),
	}
}

// marker is the position of a "Candidate X:" start marker.
type marker struct {
	start int // offset of "Candidate"
	end   int // offset just past the colon
}

// findMarkers returns every "Candidate <A-Z>:" occurrence in raw.
func findMarkers(raw string) []marker {
	var markers []marker
	for i := 0; i < len(raw); {
		j := strings.Index(raw[i:], candidateMarker)
		if j < 0 {
			break
		}
		pos := i + j
		letter := pos + len(candidateMarker)
		if letter+1 < len(raw) && isUpper(raw[letter]) && raw[letter+1] == ':' {
			markers = append(markers, marker{start: pos, end: letter + 2})
			i = letter + 2
			continue
		}
		i = pos + 1
	}
	return markers
}

// segmentBlocks splits raw at each start marker. A block runs to the next
// marker or the end of the text, and only counts if it carries a Strategy field.
func segmentBlocks(raw string) []string {
	markers := findMarkers(raw)
	blocks := make([]string, 0, len(markers))
	for i, m := range markers {
		end := len(raw)
		if i+1 < len(markers) {
			end = markers[i+1].start
		}
		block := raw[m.start:end]
		if !strings.Contains(block[m.end-m.start:], strategyMarker) {
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// blockLabel reads the letter between "Candidate " and the colon.
func blockLabel(block string) string {
	if !strings.HasPrefix(block, candidateMarker) {
		return UnknownLabel
	}
	rest := block[len(candidateMarker):]
	if len(rest) < 2 || !isUpper(rest[0]) || rest[1] != ':' {
		return UnknownLabel
	}
	return rest[:1]
}

// fieldLine returns the trimmed text after the first occurrence of name, up
// to the end of that line. If the marker ends its line, the next non-blank
// line is used unless it starts another field.
func fieldLine(block, name string) string {
	idx := strings.Index(block, name)
	if idx < 0 {
		return ""
	}
	rest := block[idx+len(name):]

	line, tail, _ := strings.Cut(rest, "\n")
	if v := strings.TrimSpace(line); v != "" {
		return v
	}

	for tail != "" {
		line, tail, _ = strings.Cut(tail, "\n")
		v := strings.TrimSpace(line)
		if v == "" {
			continue
		}
		if startsField(v) {
			return ""
		}
		return v
	}
	return ""
}

// fieldRest returns the trimmed text after name through the end of the block.
func fieldRest(block, name string) string {
	idx := strings.Index(block, name)
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(block[idx+len(name):])
}

func startsField(line string) bool {
	return strings.HasPrefix(line, strategyMarker) ||
		strings.HasPrefix(line, promptMarker) ||
		strings.HasPrefix(line, rationaleMarker)
}

// unquotePrompt strips one wrapping quote from each side of a prompt line.
// With an opening quote, the text ends at the first unescaped quote or the end
// of the line, whichever comes first. An escaped quote (\") never closes.
func unquotePrompt(v string) string {
	if v == "" {
		return ""
	}
	if v[0] == '"' {
		body := v[1:]
		if end := closingQuote(body); end >= 0 {
			body = body[:end]
		}
		return strings.TrimSpace(body)
	}
	if n := len(v); n >= 2 && v[n-1] == '"' && v[n-2] != '\\' {
		v = v[:n-1]
	}
	return strings.TrimSpace(v)
}

// closingQuote returns the index of the first quote in s not preceded by a backslash.
func closingQuote(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '"' && (i == 0 || s[i-1] != '\\') {
			return i
		}
	}
	return -1
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
