package extract_test

import (
	"testing"

	"palette_api/pkg/extract"

	"github.com/stretchr/testify/require"
)

func TestDirectParse(t *testing.T) {
	raw := `{"personalColor":"Spring Light","faceShape":"Oval"}`

	obj, err := extract.JSON(raw)
	require.NoError(t, err)
	require.Equal(t, "Spring Light", obj["personalColor"])
	require.Equal(t, "Oval", obj["faceShape"])
}

func TestDirectParseIsVerbatim(t *testing.T) {
	raw := `{"a":1,"nested":{"b":[1,2,3]},"extra":"kept"}`

	obj, err := extract.JSON(raw)
	require.NoError(t, err)
	require.Equal(t, float64(1), obj["a"])
	require.Equal(t, "kept", obj["extra"])
	nested, ok := obj["nested"].(map[string]any)
	require.True(t, ok)
	require.Len(t, nested["b"], 3)
}

func TestJSONFence(t *testing.T) {
	raw := "```json\n{\"a\":1}\n```"

	obj, err := extract.JSON(raw)
	require.NoError(t, err)
	require.Equal(t, float64(1), obj["a"])
}

func TestJSONFenceWithSurroundingProse(t *testing.T) {
	raw := "Sure! Here is the diagnosis:\n```json\n{\"faceShape\":\"Round\"}\n```\nHope this helps."

	obj, err := extract.JSON(raw)
	require.NoError(t, err)
	require.Equal(t, "Round", obj["faceShape"])
}

func TestBareFence(t *testing.T) {
	raw := "```\n{\"a\":2}\n```"

	obj, err := extract.JSON(raw)
	require.NoError(t, err)
	require.Equal(t, float64(2), obj["a"])
}

func TestBraceSpanRecovery(t *testing.T) {
	raw := "Here is the result:\n{\"a\":1}\nLet me know if you need anything else."

	obj, err := extract.JSON(raw)
	require.NoError(t, err)
	require.Equal(t, float64(1), obj["a"])
}

func TestBraceSpanIsOutermost(t *testing.T) {
	// The outer span covers both objects and is itself invalid, and
	// no inner candidate is retried: that is the documented limit.
	raw := `junk {"a":1} junk {"b":2} junk`

	_, err := extract.JSON(raw)
	var malformed *extract.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestNoRecoverableJSON(t *testing.T) {
	_, err := extract.JSON("the model refused to answer")

	var malformed *extract.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	require.NotNil(t, malformed.Cause)
}

func TestTruncatedJSONIsNotRepaired(t *testing.T) {
	_, err := extract.JSON(`{"personalColor":"Spring`)

	var malformed *extract.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestEmptyFenceFallsThrough(t *testing.T) {
	raw := "``````\n{\"a\":3}"

	obj, err := extract.JSON(raw)
	require.NoError(t, err)
	require.Equal(t, float64(3), obj["a"])
}
