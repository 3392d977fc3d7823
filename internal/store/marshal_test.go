package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftgate/boost/internal/boost"
)

func TestMarshalContext_SortedKeys(t *testing.T) {
	out, err := marshalContext(map[string]string{
		"zeta":  "last",
		"alpha": "first",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":"first","zeta":"last"}`, out)
}

func TestMarshalContext_NoHTMLEscaping(t *testing.T) {
	out, err := marshalContext(map[string]string{"note": "a<b & c>d"})
	require.NoError(t, err)
	assert.Equal(t, `{"note":"a<b & c>d"}`, out)
}

func TestMarshalContext_NFCNormalization(t *testing.T) {
	// "é" as combining sequence (U+0065 U+0301) normalizes to precomposed U+00E9.
	decomposed := "café"
	precomposed := "café"

	a, err := marshalContext(map[string]string{"k": decomposed})
	require.NoError(t, err)
	b, err := marshalContext(map[string]string{"k": precomposed})
	require.NoError(t, err)
	assert.Equal(t, b, a, "equivalent unicode forms must serialize identically")
}

func TestMarshalContext_EmptyIsNull(t *testing.T) {
	out, err := marshalContext(nil)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestContext_RoundTrip(t *testing.T) {
	in := map[string]string{boost.TargetVillageKey: "thornwick", "note": "hi"}
	raw, err := marshalContext(in)
	require.NoError(t, err)

	out, err := unmarshalContext(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestMarshalEffect_StableFieldOrder(t *testing.T) {
	out, err := marshalEffect(&boost.Effect{
		Name:           "waypost",
		Description:    "deliveries may target another village",
		RequiresTarget: true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"waypost","description":"deliveries may target another village","requires_target":true}`, out)
}

func TestEffect_RoundTrip(t *testing.T) {
	in := &boost.Effect{Name: "aegis", Description: "reduced damage", Passive: true}
	raw, err := marshalEffect(in)
	require.NoError(t, err)

	out, err := unmarshalEffect(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRefs_RoundTrip(t *testing.T) {
	raw, err := marshalRefs([]string{"msg:1187", "msg:1188"})
	require.NoError(t, err)
	assert.Equal(t, `["msg:1187","msg:1188"]`, raw)

	out, err := unmarshalRefs(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"msg:1187", "msg:1188"}, out)
}
