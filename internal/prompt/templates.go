package prompt

import (
	"strings"
)

// Prompt is a rendered system and user message pair.
type Prompt struct {
	System string
	User   string
}

// field describes one key of the JSON block the model must return.
type field struct {
	name, typ, desc string
}

var (
	classifyFields = []field{
		{"reasoning", "string", "Пояснение, почему вопрос релевантен или нерелевантен."},
		{"relevant", "bool", "Бинарный ответ: true (релевантен) или false (нерелевантен)."},
	}
	answerFields = []field{
		{"reasoning", "string", "Объясни, на основе чего ты дал такой ответ."},
		{"answer", "int", "Номер выбранного варианта ответа, начиная с 1."},
	}
)

// formatInstructions asks for a fenced json block with the given keys.
func formatInstructions(fields []field) string {
	var b strings.Builder
	b.WriteString("Ответ должен быть фрагментом markdown в следующей схеме, включая открывающие \"```json\" и закрывающие \"```\":\n\n")
	b.WriteString("```json\n{\n")
	for _, f := range fields {
		b.WriteString("\t\"" + f.name + "\": " + f.typ + "  // " + f.desc + "\n")
	}
	b.WriteString("}\n```")
	return b.String()
}

type templateData struct {
	University string
	Question   string
	Context    string
	Options    []string
	Examples   []Example
	Format     string
}

// ClassifyPrompt renders the relevance prompt for question.
func (p *Profile) ClassifyPrompt(question string) (Prompt, error) {
	return p.stage(tmplClassifySystem, tmplClassify, templateData{
		University: p.University,
		Question:   question,
		Examples:   p.Examples,
		Format:     formatInstructions(classifyFields),
	})
}

// AnswerPrompt renders the multiple-choice prompt. question already carries
// the renumbered option list.
func (p *Profile) AnswerPrompt(question, context string, options []string) (Prompt, error) {
	return p.stage(tmplAnswerSystem, tmplAnswer, templateData{
		University: p.University,
		Question:   question,
		Context:    context,
		Options:    options,
		Format:     formatInstructions(answerFields),
	})
}

// SummaryPrompt renders the free-form synthesis prompt over context.
func (p *Profile) SummaryPrompt(context string) (Prompt, error) {
	return p.stage(tmplSummarizeSystem, tmplSummarize, templateData{
		University: p.University,
		Context:    context,
	})
}

func (p *Profile) stage(systemName, userName string, data templateData) (Prompt, error) {
	system, err := p.render(systemName, data)
	if err != nil {
		return Prompt{}, err
	}
	user, err := p.render(userName, data)
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{
		System: strings.TrimSpace(system),
		User:   strings.TrimSpace(user),
	}, nil
}
