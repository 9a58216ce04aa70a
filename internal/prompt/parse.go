package prompt

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
)

// ErrNoJSON is returned when a completion holds no JSON object.
var ErrNoJSON = eris.New("prompt: no json object in completion")

// ExtractJSON pulls the JSON object out of a completion that may wrap it in a
// markdown fence or surrounding prose.
func ExtractJSON(text string) (string, error) {
	text = strings.TrimSpace(text)

	if i := strings.Index(text, "```"); i >= 0 {
		body := text[i+3:]
		if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.Contains(body[:nl], "{") {
			body = body[nl+1:] // drop the language tag
		}
		if j := strings.Index(body, "```"); j >= 0 {
			body = body[:j]
		}
		text = body
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", ErrNoJSON
	}
	obj := text[start : end+1]
	if !gjson.Valid(obj) {
		return "", eris.Wrap(ErrNoJSON, "prompt: invalid json")
	}
	return obj, nil
}

// Classification is the parsed relevance block.
type Classification struct {
	Relevant  bool
	Reasoning string
}

// ParseClassification reads {"reasoning", "relevant"} from a completion.
// relevant may be a JSON bool or a string such as "True" or "да".
func ParseClassification(text string) (Classification, error) {
	obj, err := ExtractJSON(text)
	if err != nil {
		return Classification{}, err
	}
	rel := gjson.Get(obj, "relevant")
	if !rel.Exists() {
		return Classification{}, eris.New("prompt: relevant field missing")
	}
	relevant, ok := parseBool(rel)
	if !ok {
		return Classification{}, eris.Errorf("prompt: relevant is not a boolean: %s", rel.Raw)
	}
	return Classification{
		Relevant:  relevant,
		Reasoning: strings.TrimSpace(gjson.Get(obj, "reasoning").String()),
	}, nil
}

func parseBool(r gjson.Result) (bool, bool) {
	switch r.Type {
	case gjson.True:
		return true, true
	case gjson.False:
		return false, true
	case gjson.String:
		switch strings.ToLower(strings.TrimSpace(r.Str)) {
		case "true", "yes", "да":
			return true, true
		case "false", "no", "нет":
			return false, true
		}
	}
	return false, false
}

// Choice is the parsed multiple-choice block. HasIndex is false when the
// answer field is absent or not a number; callers decide the fallback.
type Choice struct {
	Index     int
	HasIndex  bool
	Reasoning string
}

// ParseChoice reads {"reasoning", "answer"} from a completion. A numeric
// string answer such as "2" or "2." is accepted. Fractions are truncated and
// values beyond the int32 range saturate, so callers clamping into [1, K]
// always see the sign and direction the model meant.
func ParseChoice(text string) (Choice, error) {
	obj, err := ExtractJSON(text)
	if err != nil {
		return Choice{}, err
	}
	c := Choice{Reasoning: strings.TrimSpace(gjson.Get(obj, "reasoning").String())}

	ans := gjson.Get(obj, "answer")
	switch ans.Type {
	case gjson.Number:
		c.Index, c.HasIndex = saturate(ans.Float())
	case gjson.String:
		s := strings.TrimRight(strings.TrimSpace(ans.Str), ".)")
		if !numeric(s) {
			break
		}
		// Overflowing strings come back as ±Inf with ErrRange.
		f, err := strconv.ParseFloat(s, 64)
		if err == nil || errors.Is(err, strconv.ErrRange) {
			c.Index, c.HasIndex = saturate(f)
		}
	}
	return c, nil
}

// saturate truncates f to an int, pinning it to the int32 range.
func saturate(f float64) (int, bool) {
	switch {
	case math.IsNaN(f):
		return 0, false
	case f >= math.MaxInt32:
		return math.MaxInt32, true
	case f <= math.MinInt32:
		return math.MinInt32, true
	}
	return int(f), true
}

// numeric reports whether s is a plain decimal number, rejecting the
// "inf"/"nan"/hex forms ParseFloat would otherwise accept.
func numeric(s string) bool {
	if s == "" {
		return false
	}
	digits := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits = true
		case r == '.' || r == 'e' || r == 'E':
		case (r == '-' || r == '+') && (i == 0 || s[i-1] == 'e' || s[i-1] == 'E'):
		default:
			return false
		}
	}
	return digits
}
