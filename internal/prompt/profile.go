// Package prompt holds the domain profile, renders the per-stage prompts and
// parses the structured blocks the model returns.
package prompt

import (
	_ "embed"
	"os"
	"strings"
	"text/template"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed profile.yaml
var defaultProfile []byte

// Example is one few-shot relevance example.
type Example struct {
	Question  string `yaml:"question"`
	Reasoning string `yaml:"reasoning"`
	Relevant  bool   `yaml:"relevant"`
}

// StagePrompt is the system and user template pair for one stage.
type StagePrompt struct {
	System   string `yaml:"system"`
	Template string `yaml:"template"`
}

// Messages are the fixed user-facing texts used by fallbacks.
type Messages struct {
	EmptyQuery     string `yaml:"empty_query"`
	OutOfDomain    string `yaml:"out_of_domain"`
	ClassifyFailed string `yaml:"classify_failed"`
	AnswerFailed   string `yaml:"answer_failed"`
	SummaryFailed  string `yaml:"summary_failed"`
}

// Profile describes the target domain: which university, how to shape the
// search query and how to talk to the model.
type Profile struct {
	University   string      `yaml:"university"`
	SearchSuffix string      `yaml:"search_suffix"`
	SearchSite   string      `yaml:"search_site"`
	TrailerText  string      `yaml:"trailer"`
	Examples     []Example   `yaml:"examples"`
	Classify     StagePrompt `yaml:"classify"`
	Answer       StagePrompt `yaml:"answer"`
	Summarize    StagePrompt `yaml:"summarize"`
	Messages     Messages    `yaml:"messages"`

	tmpl *template.Template
}

// Default returns the embedded profile.
func Default() (*Profile, error) {
	return Parse(defaultProfile)
}

// Load reads a profile from path. An empty path returns the embedded profile.
func Load(path string) (*Profile, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "prompt: read profile %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML profile and compiles its templates.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, eris.Wrap(err, "prompt: decode profile")
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := p.compile(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Profile) validate() error {
	var missing []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	check("university", p.University)
	check("trailer", p.TrailerText)
	check("classify.template", p.Classify.Template)
	check("answer.template", p.Answer.Template)
	check("summarize.template", p.Summarize.Template)
	check("messages.empty_query", p.Messages.EmptyQuery)
	check("messages.out_of_domain", p.Messages.OutOfDomain)
	check("messages.classify_failed", p.Messages.ClassifyFailed)
	check("messages.answer_failed", p.Messages.AnswerFailed)
	check("messages.summary_failed", p.Messages.SummaryFailed)

	if len(missing) > 0 {
		return eris.Errorf("prompt: profile missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// Template names inside the compiled set.
const (
	tmplTrailer         = "trailer"
	tmplClassifySystem  = "classify.system"
	tmplClassify        = "classify"
	tmplAnswerSystem    = "answer.system"
	tmplAnswer          = "answer"
	tmplSummarizeSystem = "summarize.system"
	tmplSummarize       = "summarize"
)

func (p *Profile) compile() error {
	root := template.New("profile")
	sources := map[string]string{
		tmplTrailer:         p.TrailerText,
		tmplClassifySystem:  p.Classify.System,
		tmplClassify:        p.Classify.Template,
		tmplAnswerSystem:    p.Answer.System,
		tmplAnswer:          p.Answer.Template,
		tmplSummarizeSystem: p.Summarize.System,
		tmplSummarize:       p.Summarize.Template,
	}
	for name, src := range sources {
		// Optional system prompts stay undefined and render empty.
		if strings.TrimSpace(src) == "" {
			continue
		}
		if _, err := root.New(name).Parse(src); err != nil {
			return eris.Wrapf(err, "prompt: parse template %s", name)
		}
	}
	p.tmpl = root
	return nil
}

// SearchQuery shapes a question into the web-search query: the trailing
// question mark is dropped and the domain suffix appended.
func (p *Profile) SearchQuery(question string) string {
	q := strings.TrimRight(strings.TrimSpace(question), "?")
	if p.SearchSuffix == "" {
		return q
	}
	return strings.TrimSpace(q + " " + p.SearchSuffix)
}

// Trailer renders the attribution appended to every reasoning, including a
// leading space.
func (p *Profile) Trailer(model string) string {
	s, err := p.render(tmplTrailer, struct{ Model string }{model})
	if err != nil {
		return ""
	}
	return " " + strings.TrimSpace(s)
}

func (p *Profile) render(name string, data any) (string, error) {
	if p.tmpl.Lookup(name) == nil {
		return "", nil
	}
	var b strings.Builder
	if err := p.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", eris.Wrapf(err, "prompt: render %s", name)
	}
	return b.String(), nil
}
