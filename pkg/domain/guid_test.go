package domain

import (
	"math/big"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "roster/pkg/domain-errors"
)

func TestParseGuid(t *testing.T) {
	t.Run("accepts canonical text", func(t *testing.T) {
		g, err := ParseGuid("01234567-89AB-CDEF-0123-456789ABCDEF")
		require.NoError(t, err)

		g1, g2, g3, g4, g5 := g.Groups()
		assert.Equal(t, uint32(0x01234567), g1)
		assert.Equal(t, uint16(0x89AB), g2)
		assert.Equal(t, uint16(0xCDEF), g3)
		assert.Equal(t, uint16(0x0123), g4)
		assert.Equal(t, uint64(0x456789ABCDEF), g5)
		assert.Equal(t, "01234567-89AB-CDEF-0123-456789ABCDEF", g.String())
	})

	t.Run("canonicalizes lowercase", func(t *testing.T) {
		g, err := ParseGuid("01234567-89ab-cdef-0123-456789abcdef")
		require.NoError(t, err)
		assert.Equal(t, "01234567-89AB-CDEF-0123-456789ABCDEF", g.String())
	})

	t.Run("undersized groups parse as their value", func(t *testing.T) {
		g, err := ParseGuid("1-2-3-4-5")
		require.NoError(t, err)
		assert.Equal(t, NewGuid(1, 2, 3, 4, 5), g)
		assert.Equal(t, "00000001-0002-0003-0004-000000000005", g.String())
	})

	t.Run("group 5 holds 64 bits", func(t *testing.T) {
		g, err := ParseGuid("0-0-0-0-FFFFFFFFFFFFFFFF")
		require.NoError(t, err)
		assert.Equal(t, "00000000-0000-0000-0000-FFFFFFFFFFFFFFFF", g.String())

		again, err := ParseGuid(g.String())
		require.NoError(t, err)
		assert.Equal(t, g, again)
	})

	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"four groups", "01234567-89AB-CDEF-0123"},
		{"six groups", "01234567-89AB-CDEF-0123-4567-89AB"},
		{"empty group", "01234567--CDEF-0123-456789ABCDEF"},
		{"non-hex digit", "0123456G-89AB-CDEF-0123-456789ABCDEF"},
		{"group 1 overflow", "123456789-89AB-CDEF-0123-456789ABCDEF"},
		{"group 2 overflow", "01234567-189AB-CDEF-0123-456789ABCDEF"},
		{"group 5 overflow", "01234567-89AB-CDEF-0123-1FFFFFFFFFFFFFFFF"},
		{"sign", "+1234567-89AB-CDEF-0123-456789ABCDEF"},
		{"whitespace", " 01234567-89AB-CDEF-0123-456789ABCDEF"},
		{"braces", "{01234567-89AB-CDEF-0123-456789ABCDEF}"},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := ParseGuid(tt.input)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeMalformedIdentifier))
		})
	}
}

// TestGuidRoundTrip checks the lossy-canonical round trip: formatting is
// stable after one parse even when the input was not canonical.
func TestGuidRoundTrip(t *testing.T) {
	inputs := []string{
		"01234567-89AB-CDEF-0123-456789ABCDEF",
		"01234567-89ab-cdef-0123-456789abcdef",
		"1-2-3-4-5",
		"0-0-0-0-0",
		"FFFFFFFF-FFFF-FFFF-FFFF-FFFFFFFFFFFFFFFF",
	}
	for _, s := range inputs {
		t.Run(s, func(t *testing.T) {
			g, err := ParseGuid(s)
			require.NoError(t, err)

			again, err := ParseGuid(g.String())
			require.NoError(t, err)
			assert.Equal(t, g, again)
			assert.Equal(t, g.String(), again.String())
		})
	}
}

func packed(g Guid) *big.Int {
	g1, g2, g3, g4, g5 := g.Groups()
	v := new(big.Int).SetUint64(g5)
	v.Lsh(v, 16).Or(v, new(big.Int).SetUint64(uint64(g4)))
	v.Lsh(v, 16).Or(v, new(big.Int).SetUint64(uint64(g3)))
	v.Lsh(v, 16).Or(v, new(big.Int).SetUint64(uint64(g2)))
	v.Lsh(v, 32).Or(v, new(big.Int).SetUint64(uint64(g1)))
	return v
}

func TestGuidOrdering(t *testing.T) {
	t.Run("orders by packed value, not text", func(t *testing.T) {
		high := NewGuid(1, 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFFFFFFFFFF)
		low := NewGuid(2, 0, 0, 0, 0)

		assert.Less(t, high.String(), low.String(), "text order puts group1=1 first")
		assert.True(t, low.Less(high))
		assert.Equal(t, 1, high.Compare(low))
	})

	t.Run("group 1 is least significant", func(t *testing.T) {
		assert.True(t, NewGuid(1, 0, 0, 0, 0).Less(NewGuid(2, 0, 0, 0, 0)))
		assert.True(t, NewGuid(0xFFFFFFFF, 0, 0, 0, 0).Less(NewGuid(0, 1, 0, 0, 0)))
		assert.True(t, NewGuid(0, 0xFFFF, 0, 0, 0).Less(NewGuid(0, 0, 1, 0, 0)))
		assert.True(t, NewGuid(0, 0, 0xFFFF, 0, 0).Less(NewGuid(0, 0, 0, 1, 0)))
		assert.True(t, NewGuid(0, 0, 0, 0xFFFF, 0).Less(NewGuid(0, 0, 0, 0, 1)))
	})

	t.Run("group 5 bits above 48 are significant", func(t *testing.T) {
		wide := NewGuid(0, 0, 0, 0, 1<<63)
		narrower := NewGuid(0, 0, 0, 0, 1<<62)
		max48 := NewGuid(0xFFFFFFFF, 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFFFFFFFFFF)

		assert.NotEqual(t, wide, narrower)
		assert.Equal(t, 1, wide.Compare(narrower))
		assert.True(t, narrower.Less(wide))
		assert.True(t, max48.Less(NewGuid(0, 0, 0, 0, 1<<48)))
		assert.Equal(t, 0, wide.Compare(NewGuid(0, 0, 0, 0, 1<<63)))
	})

	t.Run("total and consistent with the packed composite", func(t *testing.T) {
		samples := []Guid{
			{},
			NewGuid(1, 0, 0, 0, 0),
			NewGuid(2, 0, 0, 0, 0),
			NewGuid(0, 1, 0, 0, 0),
			NewGuid(0xFFFFFFFF, 0xFFFF, 0, 0, 0),
			NewGuid(1, 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFFFFFFFFFF),
			NewGuid(0, 0, 0, 0, 0xFFFFFFFFFFFFFFFF),
			NewGuid(0, 0, 0, 0, 1<<48),
			MustGuid("01234567-89AB-CDEF-0123-456789ABCDEF"),
			MustGuid("FEDCBA98-7654-3210-FEDC-BA9876543210"),
		}
		for _, a := range samples {
			for _, b := range samples {
				c := a.Compare(b)
				assert.Equal(t, packed(a).Cmp(packed(b)), c, "%s vs %s", a, b)
				assert.Equal(t, -c, b.Compare(a))

				holds := 0
				if a.Less(b) {
					holds++
				}
				if a == b {
					holds++
				}
				if b.Less(a) {
					holds++
				}
				assert.Equal(t, 1, holds, "exactly one relation for %s vs %s", a, b)
			}
		}
	})
}

func TestGuidText(t *testing.T) {
	var g Guid
	require.NoError(t, g.UnmarshalText([]byte("a-b-c-d-e")))
	out, err := g.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "0000000A-000B-000C-000D-00000000000E", string(out))

	err = g.UnmarshalText([]byte("nope"))
	require.Error(t, err)
	assert.Equal(t, "0000000A-000B-000C-000D-00000000000E", g.String(), "failed unmarshal leaves value unchanged")
}

func TestGuidUUIDBridge(t *testing.T) {
	t.Run("round-trips through uuid", func(t *testing.T) {
		u := uuid.New()
		g := GuidFromUUID(u)
		assert.Equal(t, strings.ToUpper(u.String()), g.String())

		back, err := g.UUID()
		require.NoError(t, err)
		assert.Equal(t, u, back)
	})

	t.Run("rejects group 5 wider than 48 bits", func(t *testing.T) {
		_, err := NewGuid(0, 0, 0, 0, 1<<48).UUID()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeMalformedIdentifier))
	})
}
