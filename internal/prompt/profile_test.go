package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "РЭУ им. Г.В. Плеханова", p.University)
	assert.Equal(t, "Университет РЭУ им. Плеханова", p.SearchSuffix)
	assert.Equal(t, "rea.ru", p.SearchSite)
	assert.Len(t, p.Examples, 4)
	assert.True(t, p.Examples[0].Relevant)
	assert.False(t, p.Examples[3].Relevant)
	assert.Equal(t, "Пустой запрос", p.Messages.EmptyQuery)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "РЭУ им. Г.В. Плеханова", p.University)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
university: МГУ
search_suffix: МГУ имени Ломоносова
trailer: "Model: {{.Model}}"
classify:
  template: "Q: {{.Question}}"
answer:
  template: "A: {{.Question}}"
summarize:
  template: "S: {{.Context}}"
messages:
  empty_query: empty
  out_of_domain: ood
  classify_failed: cf
  answer_failed: af
  summary_failed: sf
`), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "МГУ", p.University)
	assert.Equal(t, " Model: m1", p.Trailer("m1"))

	// System prompts are optional.
	pr, err := p.ClassifyPrompt("вопрос")
	require.NoError(t, err)
	assert.Empty(t, pr.System)
	assert.Equal(t, "Q: вопрос", pr.User)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt: read profile")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("university: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt: decode profile")
}

func TestParse_MissingFields(t *testing.T) {
	_, err := Parse([]byte("university: X\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trailer")
	assert.Contains(t, err.Error(), "classify.template")
	assert.Contains(t, err.Error(), "messages.summary_failed")
}

func TestParse_BadTemplate(t *testing.T) {
	_, err := Parse([]byte(`
university: X
trailer: "{{.Model"
classify: {template: a}
answer: {template: b}
summarize: {template: c}
messages: {empty_query: a, out_of_domain: e, classify_failed: b, answer_failed: c, summary_failed: d}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt: parse template trailer")
}

func TestSearchQuery(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	tests := []struct {
		in, want string
	}{
		{"Где находится общежитие?", "Где находится общежитие Университет РЭУ им. Плеханова"},
		{"  Сколько стоит обучение??  ", "Сколько стоит обучение Университет РЭУ им. Плеханова"},
		{"Ректор", "Ректор Университет РЭУ им. Плеханова"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.SearchQuery(tt.in))
	}

	p.SearchSuffix = ""
	assert.Equal(t, "Ректор", p.SearchQuery("Ректор?"))
}

func TestTrailer(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)
	assert.Equal(t, " Ответ сгенерирован моделью gpt-4o-mini", p.Trailer("gpt-4o-mini"))
}

func TestClassifyPrompt(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	pr, err := p.ClassifyPrompt("Есть ли военная кафедра?")
	require.NoError(t, err)

	assert.Contains(t, pr.System, "РЭУ им. Г.В. Плеханова")
	assert.Contains(t, pr.User, "Есть ли военная кафедра?")
	assert.Contains(t, pr.User, "Какой курс доллара прогнозируют на 2025 год?")
	assert.Contains(t, pr.User, "relevant: false")
	assert.Contains(t, pr.User, "```json")
	assert.Contains(t, pr.User, `"relevant": bool`)
}

func TestAnswerPrompt(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	q := "Какие формы обучения есть?\n1. Очная\n2. Заочная\n3. Вечерняя"
	pr, err := p.AnswerPrompt(q, "контекст со страницы", []string{"Очная", "Заочная", "Вечерняя"})
	require.NoError(t, err)

	assert.Contains(t, pr.User, q)
	assert.Contains(t, pr.User, "контекст со страницы")
	assert.Contains(t, pr.User, "от 1 до 3")
	assert.Contains(t, pr.User, `"answer": int`)
	assert.NotEmpty(t, pr.System)
}

func TestSummaryPrompt(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	pr, err := p.SummaryPrompt("первый\nвторой")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(pr.User, "первый\nвторой"))
	assert.NotContains(t, pr.User, "```json")
}
