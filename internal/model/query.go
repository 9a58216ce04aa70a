package model

// Query is an incoming question. ID is echoed back unchanged when present.
type Query struct {
	ID   *int64 `json:"id,omitempty"`
	Text string `json:"query"`
}

// ResponseModel is the answer returned to the caller. Answer is the 1-based
// option index when the question carried options, and null otherwise.
type ResponseModel struct {
	ID        *int64   `json:"id,omitempty"`
	Answer    *int     `json:"answer"`
	Reasoning string   `json:"reasoning"`
	Sources   []string `json:"sources"`
}

// MaxSources is the hard cap on sources in any response.
const MaxSources = 3

// NewResponse builds a response, capping sources at MaxSources and never
// returning a nil sources slice.
func NewResponse(q Query, answer *int, reasoning string, sources []string) ResponseModel {
	if len(sources) > MaxSources {
		sources = sources[:MaxSources]
	}
	out := make([]string, len(sources))
	copy(out, sources)
	return ResponseModel{
		ID:        q.ID,
		Answer:    answer,
		Reasoning: reasoning,
		Sources:   out,
	}
}
