package model

// OptionSet is the ordered list of multiple-choice options found in a
// question. It is empty or holds between 2 and 10 entries.
type OptionSet []string

// Present reports whether the question should be answered with an index.
func (o OptionSet) Present() bool {
	return len(o) > 0
}

// ClassificationResult is the relevance verdict for a question.
type ClassificationResult struct {
	Relevant bool   `json:"relevant"`
	Reason   string `json:"reasoning"`
}

// AnswerResult is the generator's output. SelectedIndex is set iff options
// were present, and is always within [1, len(options)].
type AnswerResult struct {
	SelectedIndex *int   `json:"answer"`
	Reasoning     string `json:"reasoning"`
}
