package repair

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValue(t *testing.T) {
	v, err := DecodeValue(`{"b": [1, "two", true, null], "a": {"x": 2.5}}`)
	require.NoError(t, err)

	assert.Equal(t, KindObject, v.Kind)
	assert.Equal(t, []string{"b", "a"}, v.Keys)

	b := v.Fields["b"]
	require.Equal(t, KindArray, b.Kind)
	require.Len(t, b.Items, 4)
	assert.Equal(t, KindNumber, b.Items[0].Kind)
	assert.Equal(t, "1", b.Items[0].Num.String())
	assert.Equal(t, "two", b.Items[1].Str)
	assert.True(t, b.Items[2].Bool)
	assert.Equal(t, KindNull, b.Items[3].Kind)

	assert.Equal(t, "2.5", v.Fields["a"].Fields["x"].Num.String())
}

func TestDecodeValue_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "truncated", input: `{"summary": "cut`},
		{name: "unquoted key", input: `{summary: "x"}`},
		{name: "trailing data", input: `{"a": 1} {"b": 2}`},
		{name: "prose", input: "not json at all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeValue(tt.input)
			require.Error(t, err)
			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr), "got %T", err)
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "null", KindNull.String())
	assert.Equal(t, "array", KindArray.String())
}
