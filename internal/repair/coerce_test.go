package repair

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, text string) Value {
	t.Helper()
	v, err := DecodeValue(text)
	require.NoError(t, err)
	return v
}

func TestCoerce_NearMissDocument(t *testing.T) {
	v := mustDecode(t, `{
		"summary": {"text": "Backend engineer with a focus on payments."},
		"experience": {
			"employer": "Acme Corp",
			"title": "Software Engineer",
			"bullets": "Built REST APIs for billing\n• Cut deploy time with CI pipelines"
		},
		"skills": "Go, PostgreSQL; Kubernetes",
		"confidence": 0.9
	}`)

	resume, steps, err := Coerce(v)
	require.NoError(t, err)

	assert.Equal(t, "Backend engineer with a focus on payments.", resume.Summary)
	require.Len(t, resume.Experience, 1)
	role := resume.Experience[0]
	assert.Equal(t, "Acme Corp", role.Company)
	assert.Equal(t, "Software Engineer", role.Role)
	assert.Equal(t, []string{"Built REST APIs for billing", "Cut deploy time with CI pipelines"}, role.Bullets)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Kubernetes"}, resume.SkillsSection)

	assert.Contains(t, steps, `(root): dropped unknown key "confidence"`)
	assert.Contains(t, steps, `(root): renamed "skills" to "skills_section"`)
	assert.Contains(t, steps, "experience: wrapped single object as list")
	assert.Contains(t, steps, "summary: converted object to string")
	assert.Contains(t, steps, "skills_section: split delimited string into 3 items")
}

func TestCoerce_ObjectItemsBecomeStrings(t *testing.T) {
	v := mustDecode(t, `{
		"summary": "Backend engineer with a focus on payments.",
		"experience": [{"company": "Acme", "role": "Engineer", "bullets": [{"content": "Built REST APIs for billing"}, "", 42]}],
		"skills_section": [{"name": "Go"}, "SQL", "Docker"]
	}`)

	resume, steps, err := Coerce(v)
	require.NoError(t, err)

	assert.Equal(t, []string{"Built REST APIs for billing", "42"}, resume.Experience[0].Bullets)
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, resume.SkillsSection)
	assert.Contains(t, steps, "experience.0.bullets: converted 2 non-string items")
	assert.Contains(t, steps, "experience.0.bullets: dropped 1 empty items")
}

func TestCoerce_MissingArraysBecomeEmpty(t *testing.T) {
	resume, steps, err := Coerce(mustDecode(t, `{"summary": "Only a summary was returned here."}`))
	require.NoError(t, err)

	assert.NotNil(t, resume.Experience)
	assert.Empty(t, resume.Experience)
	assert.NotNil(t, resume.SkillsSection)
	assert.Empty(t, resume.SkillsSection)
	assert.Contains(t, steps, "experience: missing, using empty list")
}

func TestCoerce_UnwrapsSingleElementArray(t *testing.T) {
	resume, steps, err := Coerce(mustDecode(t, `[{"summary": "Wrapped in an array by the model."}]`))
	require.NoError(t, err)
	assert.Equal(t, "Wrapped in an array by the model.", resume.Summary)
	assert.Contains(t, steps, "(root): unwrapped single-element array")
}

func TestCoerce_NonObject(t *testing.T) {
	for _, input := range []string{`"just a string"`, `[1, 2]`, `null`} {
		_, _, err := Coerce(mustDecode(t, input))
		var coercionErr *CoercionError
		assert.True(t, errors.As(err, &coercionErr), "input %s", input)
	}
}

func TestCoerce_DropsNonObjectRoles(t *testing.T) {
	resume, steps, err := Coerce(mustDecode(t, `{"experience": ["Engineer at Acme", {"company": "Acme", "role": "Engineer", "bullets": []}]}`))
	require.NoError(t, err)
	require.Len(t, resume.Experience, 1)
	assert.Contains(t, steps, "experience.0: dropped string entry")
}
