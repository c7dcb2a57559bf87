package main

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintParametersTextGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printParametersText(&buf, csourceFixture()))

	want := `DSA-Parameters: (184 bit)
P:
    00:c6:1f:83:7a:2b:04:55:d3:6e:91:10:fe:dc:ba:
    98:76:54:32:10:01:02:03:04
Q:
    00:9d:3c:5b:7a:99
G:
    02
`
	assert.Equal(t, want, buf.String())
}

func TestPrintParametersTextHeaderBits(t *testing.T) {
	params := testParams(t)
	var buf bytes.Buffer
	require.NoError(t, printParametersText(&buf, params))
	assert.True(t, strings.HasPrefix(buf.String(), "DSA-Parameters: (512 bit)\n"))
}

func TestPrintHex(t *testing.T) {
	dump := func(n *big.Int) string {
		var buf bytes.Buffer
		require.NoError(t, printHex(&buf, n))
		return buf.String()
	}

	t.Run("zero", func(t *testing.T) {
		assert.Equal(t, "    00\n", dump(new(big.Int)))
	})

	t.Run("top bit clear", func(t *testing.T) {
		assert.Equal(t, "    7f:ff\n", dump(big.NewInt(0x7fff)))
	})

	t.Run("top bit set gets leading zero", func(t *testing.T) {
		assert.Equal(t, "    00:80\n", dump(big.NewInt(0x80)))
	})

	t.Run("full line has no trailing colon", func(t *testing.T) {
		n := new(big.Int).SetBytes([]byte{
			0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
			0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
		})
		assert.Equal(t, "    01:02:03:04:05:06:07:08:09:0a:0b:0c:0d:0e:0f\n", dump(n))
	})

	t.Run("sixteenth octet wraps", func(t *testing.T) {
		n := new(big.Int).SetBytes([]byte{
			0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
			0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
		})
		assert.Equal(t, "    01:02:03:04:05:06:07:08:09:0a:0b:0c:0d:0e:0f:\n    10\n", dump(n))
	})
}
