package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleBody = []byte(`{
	"token": "abcdef",
	"user": {
		"name": "Kai Chen",
		"roles": [{"role": "diner"}]
	},
	"franchises": [
		{"id": 2, "name": "LotaPizza", "stores": [{"id": 4, "name": "Lehi"}]}
	]
}`)

func TestExtractField(t *testing.T) {
	v, err := Extract(sampleBody, "$.token")
	require.NoError(t, err)
	assert.Equal(t, "abcdef", v)
}

func TestExtractNested(t *testing.T) {
	v, err := Extract(sampleBody, "$.user.name")
	require.NoError(t, err)
	assert.Equal(t, "Kai Chen", v)
}

func TestExtractArrayIndex(t *testing.T) {
	v, err := Extract(sampleBody, "$.franchises[0].name")
	require.NoError(t, err)
	assert.Equal(t, "LotaPizza", v)

	v, err = Extract(sampleBody, "$.franchises[0].stores[0].id")
	require.NoError(t, err)
	assert.Equal(t, float64(4), v)

	v, err = Extract(sampleBody, "$.user.roles[0].role")
	require.NoError(t, err)
	assert.Equal(t, "diner", v)
}

func TestExtractRootArray(t *testing.T) {
	v, err := Extract([]byte(`[{"title": "Veggie"}]`), "$[0].title")
	require.NoError(t, err)
	assert.Equal(t, "Veggie", v)
}

func TestExtractWholeDocument(t *testing.T) {
	v, err := Extract([]byte(`{"a": 1}`), "$")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, v)
}

func TestExtractErrors(t *testing.T) {
	_, err := Extract(sampleBody, "token")
	assert.ErrorContains(t, err, "must start with $")

	_, err = Extract(sampleBody, "$.missing")
	assert.ErrorContains(t, err, "not found")

	_, err = Extract(sampleBody, "$.franchises[5]")
	assert.ErrorContains(t, err, "out of bounds")

	_, err = Extract(sampleBody, "$.token[0]")
	assert.ErrorContains(t, err, "not an array")

	_, err = Extract(sampleBody, "$.franchises[x]")
	assert.ErrorContains(t, err, "invalid array index")

	_, err = Extract([]byte("not json"), "$.a")
	assert.ErrorContains(t, err, "not valid JSON")

	_, err = Extract(sampleBody, "$.token.deeper")
	assert.Error(t, err)
}
