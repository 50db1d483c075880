package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContractSigned(t *testing.T) {
	sender := NewEmailSender("smtp.example.com", 587, "user", "pass", "nao-responda@example.com", "Advantage")

	m, err := sender.buildContractSigned("ana@example.com", "Ana Souza")
	require.NoError(t, err)

	assert.Equal(t, []string{"nao-responda@example.com"}, m.GetHeader("From"))
	assert.Equal(t, []string{"ana@example.com"}, m.GetHeader("To"))
	assert.Contains(t, m.GetHeader("Subject")[0], "Ana Souza")

	body, err := sender.renderContractSigned("Ana Souza")
	require.NoError(t, err)
	assert.Contains(t, body, "Olá, Ana Souza!")
	assert.Contains(t, body, "Equipe Advantage")
}

func TestRenderContractSignedEscapesName(t *testing.T) {
	sender := NewEmailSender("", 0, "", "", "", "Advantage")

	body, err := sender.renderContractSigned("<script>")
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}
