package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sells-group/uniqa/internal/model"
)

// DefaultMaxOptions caps how many numbered items are treated as options.
const DefaultMaxOptions = 10

// optionMarker matches the start of a numbered item: newline, digits, a
// period and horizontal whitespace. The item body runs to the next marker or
// the end of the text, so bodies may span lines.
var optionMarker = regexp.MustCompile(`\n\d+\.[ \t]*`)

// ExtractOptions finds a numbered list embedded in a question. When at least
// two options are found it returns the question rebuilt as its preamble plus
// a contiguous 1..K list, and the option texts. Otherwise the text is
// returned unchanged with no options; a lone numbered item is not a choice.
// Items past maxOptions are dropped.
func ExtractOptions(text string, maxOptions int) (string, model.OptionSet) {
	if maxOptions <= 0 || maxOptions > DefaultMaxOptions {
		maxOptions = DefaultMaxOptions
	}

	marks := optionMarker.FindAllStringIndex(text, -1)
	if len(marks) == 0 {
		return text, nil
	}

	var options model.OptionSet
	for i, m := range marks {
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		body := strings.TrimSpace(text[m[1]:end])
		if body == "" {
			continue
		}
		options = append(options, body)
		if len(options) == maxOptions {
			break
		}
	}
	if len(options) < 2 {
		return text, nil
	}

	var b strings.Builder
	b.WriteString(strings.TrimRightFunc(text[:marks[0][0]], isSpace))
	for i, opt := range options {
		b.WriteString("\n")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(opt)
	}
	return b.String(), options
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
