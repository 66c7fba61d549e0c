package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTailored() TailoredResume {
	return TailoredResume{
		Summary: "Backend engineer building payment systems.",
		Experience: []TailoredRole{
			{Company: "Acme", Role: "Engineer", Dates: "2020 - 2023", Bullets: []string{"Built payment APIs in Go"}},
		},
		SkillsSection: []string{"Go", "Kubernetes", "PostgreSQL"},
		Confidence:    1,
	}
}

func TestTailoredResume_Roles(t *testing.T) {
	tailored := sampleTailored()

	roles := tailored.Roles()

	require.Len(t, roles, 1)
	assert.Equal(t, Role{Company: "Acme", Role: "Engineer", Dates: "2020 - 2023", Bullets: []string{"Built payment APIs in Go"}}, roles[0])

	roles[0].Bullets[0] = "changed"
	assert.Equal(t, "Built payment APIs in Go", tailored.Experience[0].Bullets[0], "bullets are copied")
}

func TestTailoredResume_Document(t *testing.T) {
	doc := sampleTailored().Document()

	assert.Equal(t, "Backend engineer building payment systems.", doc.Summary)
	assert.Equal(t, []string{"Go", "Kubernetes", "PostgreSQL"}, doc.Skills)
	require.Len(t, doc.Experience, 1)
	assert.Equal(t, "Acme", doc.Experience[0].Company)
	assert.Empty(t, doc.Education)
}

func TestTailoredResume_ConfidenceNotSerialized(t *testing.T) {
	data, err := json.Marshal(sampleTailored())
	require.NoError(t, err)

	assert.NotContains(t, string(data), "confidence")
	assert.NotContains(t, string(data), "notes_to_user", "empty notes are omitted")
	assert.Contains(t, string(data), `"skills_section":["Go","Kubernetes","PostgreSQL"]`)
}
