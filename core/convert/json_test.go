package convert

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagar-developer08/tree-json/core/canonical"
	coreerrors "github.com/sagar-developer08/tree-json/core/errors"
)

func TestJSONConverter_ToCanonical(t *testing.T) {
	c := NewJSONConverter()

	v, err := c.ToCanonical(`{"b": [1, 2.50], "a": null}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a"}, v.(*canonical.Object).Keys())
	assert.Equal(t, []canonical.Value{json.Number("1"), json.Number("2.50")}, field(t, v, "b"))
	assert.Nil(t, field(t, v, "a"))
}

func TestJSONConverter_ErrorLocation(t *testing.T) {
	c := NewJSONConverter()
	text := "{\n  \"a\": 1,\n  \"b\": }"

	_, err := c.ToCanonical(text)
	require.Error(t, err)

	convErr, ok := coreerrors.AsConversion(err)
	require.True(t, ok)
	assert.Equal(t, 3, convErr.Line)
	assert.Greater(t, convErr.Column, 0)
	assert.Contains(t, convErr.Snippet, `"b": }`)
	assert.Contains(t, convErr.Snippet, "^")
	assert.Equal(t, convErr.Snippet, convErr.Detail())
}

func TestJSONConverter_RejectsTrailingData(t *testing.T) {
	c := NewJSONConverter()

	_, err := c.ToCanonical(`{"a": 1} {"b": 2}`)
	assert.True(t, coreerrors.IsConversion(err))

	_, err = c.ToCanonical("")
	assert.True(t, coreerrors.IsConversion(err))
}

func TestJSONConverter_FromCanonical(t *testing.T) {
	c := NewJSONConverter()

	out, err := c.FromCanonical(mustCanonical(t, `{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", out)

	out, err = c.FromCanonical("plain")
	require.NoError(t, err)
	assert.Equal(t, `"plain"`, out)

	_, err = c.FromCanonical(make(chan int))
	assert.True(t, coreerrors.IsConversion(err))
}
