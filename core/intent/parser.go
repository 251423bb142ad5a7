package intent

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// fallbackReasoning is reported when no strategy can recover a JSON object
// from the model output. The paired instruction changes nothing.
const fallbackReasoning = "Parse failed - no state change applied."

// parseStrategies are tried in order. Each strategy is pure: it only looks
// at the text it is given, so parsing the same output always yields the
// same instruction.
var parseStrategies = []struct {
	name  string
	parse func(string) (*instruction, error)
}{
	{"strict", parseStrict},
	{"code-fence", func(raw string) (*instruction, error) {
		return parseStrict(stripCodeFence(raw))
	}},
	{"trailing-commas", func(raw string) (*instruction, error) {
		return parseStrict(fixTrailingCommas(stripCodeFence(raw)))
	}},
	{"extract-object", func(raw string) (*instruction, error) {
		extracted, ok := extractFirstObject(raw)
		if !ok {
			return nil, errNoObject
		}
		if in, err := parseStrict(extracted); err == nil {
			return in, nil
		}
		return parseStrict(fixTrailingCommas(extracted))
	}},
	{"single-quotes", func(raw string) (*instruction, error) {
		extracted, ok := extractFirstObject(raw)
		if !ok {
			extracted = stripCodeFence(raw)
		}
		return parseStrict(fixTrailingCommas(fixSingleQuotes(extracted)))
	}},
	{"jsonrepair", func(raw string) (*instruction, error) {
		extracted, ok := extractFirstObject(raw)
		if !ok {
			extracted = stripCodeFence(raw)
		}
		repaired, err := jsonrepair.JSONRepair(extracted)
		if err != nil {
			return nil, err
		}
		return parseStrict(repaired)
	}},
}

var errNoObject = jsonError("no JSON object found")

type jsonError string

func (e jsonError) Error() string { return string(e) }

// parseResponse recovers an instruction from raw model output. It always
// returns a usable instruction; when every strategy fails the result is the
// do-nothing fallback and ok is false.
func parseResponse(raw string) (*instruction, string, bool) {
	for _, strategy := range parseStrategies {
		in, err := strategy.parse(raw)
		if err != nil {
			continue
		}
		in.normalize()
		return in, strategy.name, true
	}

	fallback := &instruction{Reasoning: fallbackReasoning}
	fallback.normalize()
	return fallback, "fallback", false
}

func parseStrict(text string) (*instruction, error) {
	var in instruction
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &in); err != nil {
		return nil, err
	}
	return &in, nil
}

var codeFenceRe = regexp.MustCompile("```(?:json)?\\s*")

func stripCodeFence(text string) string {
	text = codeFenceRe.ReplaceAllString(text, "")
	return strings.TrimSpace(strings.ReplaceAll(text, "```", ""))
}

var trailingCommaRe = regexp.MustCompile(`,\s*([\]}])`)

func fixTrailingCommas(text string) string {
	return trailingCommaRe.ReplaceAllString(text, "$1")
}

// fixSingleQuotes swaps unescaped single quotes for double quotes. It is a
// heuristic: apostrophes inside values will break, which is why this runs
// late in the cascade.
func fixSingleQuotes(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	escaped := false
	for _, r := range text {
		if r == '\'' && !escaped {
			sb.WriteByte('"')
		} else {
			sb.WriteRune(r)
		}
		escaped = r == '\\' && !escaped
	}
	return sb.String()
}

// extractFirstObject returns the first balanced {...} block, tracking
// nesting depth so inner objects stay attached.
func extractFirstObject(text string) (string, bool) {
	depth := 0
	start := -1
	for i, ch := range text {
		switch ch {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			depth--
			if depth == 0 && start >= 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
