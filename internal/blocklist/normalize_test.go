package blocklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	addrA = "1A1zP1eP5QGefi2DMPTfTL5SLmv7Divf"
	addrB = "3J98t1WpEZ73CNmQviecrnyiWrnqRhWN"
)

func addresses(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Address
	}
	return out
}

func TestNormalize_AllDocumentedShapes(t *testing.T) {
	// Every accepted wire shape yields the same addresses in the same order.
	shapes := map[string]string{
		"bare strings":   `["` + addrA + `","` + addrB + `"]`,
		"flat objects":   `[{"id":1,"address":"` + addrA + `"},{"id":2,"address":"` + addrB + `"}]`,
		"nested blocked": `[{"blocked":{"id":1,"address":"` + addrA + `"}},{"blocked":{"id":2,"address":"` + addrB + `"}}]`,
		"wrapped":        `{"blockedAddresses":["` + addrA + `","` + addrB + `"]}`,
	}

	for name, payload := range shapes {
		t.Run(name, func(t *testing.T) {
			entries, err := Normalize([]byte(payload))
			require.NoError(t, err)
			assert.Equal(t, []string{addrA, addrB}, addresses(entries))
		})
	}
}

func TestNormalize_Identifiers(t *testing.T) {
	entries, err := Normalize([]byte(`[{"id":7,"address":"` + addrA + `"},{"address":"` + addrB + `"},{"blocked":{"id":"x9","address":"` + addrA + `"}}]`))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	require.NotNil(t, entries[0].ID)
	assert.Equal(t, "7", *entries[0].ID)
	assert.Nil(t, entries[1].ID)
	require.NotNil(t, entries[2].ID)
	assert.Equal(t, "x9", *entries[2].ID)
}

func TestNormalize_DropsFalsyElements(t *testing.T) {
	entries, err := Normalize([]byte(`[null, "", 0, false, "` + addrA + `"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{addrA}, addresses(entries))
}

func TestNormalize_FallbackStringifies(t *testing.T) {
	entries, err := Normalize([]byte(`[{"id":9,"foo":"bar"}]`))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].ID)
	assert.Equal(t, "9", *entries[0].ID)
	assert.Contains(t, entries[0].Address, "foo")
}

func TestNormalize_NonArrayPayload(t *testing.T) {
	entries, err := Normalize([]byte(`{"unexpected":true}`))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNormalize_InvalidJSON(t *testing.T) {
	_, err := Normalize([]byte(`not json`))
	assert.Error(t, err)
}

func TestNormalizeCreated(t *testing.T) {
	t.Run("nested blocked record wins", func(t *testing.T) {
		entry := NormalizeCreated([]byte(`{"blocked":{"id":12,"address":"`+addrA+`"}}`), addrB)
		require.NotNil(t, entry.ID)
		assert.Equal(t, "12", *entry.ID)
		assert.Equal(t, addrA, entry.Address)
	})

	t.Run("bare record", func(t *testing.T) {
		entry := NormalizeCreated([]byte(`{"id":3,"address":"`+addrA+`"}`), addrB)
		require.NotNil(t, entry.ID)
		assert.Equal(t, "3", *entry.ID)
		assert.Equal(t, addrA, entry.Address)
	})

	t.Run("unusable body falls back to the submitted address", func(t *testing.T) {
		entry := NormalizeCreated([]byte(`"ok"`), addrB)
		assert.Nil(t, entry.ID)
		assert.Equal(t, addrB, entry.Address)
	})
}
