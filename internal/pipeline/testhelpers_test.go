package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/uniqa/internal/prompt"
)

func testProfile(t *testing.T) *prompt.Profile {
	t.Helper()
	p, err := prompt.Default()
	require.NoError(t, err)
	return p
}
