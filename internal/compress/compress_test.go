package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecs(t *testing.T) {
	payload := bytes.Repeat([]byte(`{"name":"Asumisneuvonta","language":"fi"}`), 50)

	for _, name := range []string{"nop", "gzip", "brotli", "lz4"} {
		t.Run(name, func(t *testing.T) {
			codec, err := ByName(name)
			require.NoError(t, err)

			encoded, err := codec.Encode(payload)
			require.NoError(t, err)
			if name != "nop" {
				assert.Less(t, len(encoded), len(payload))
			}

			decoded, err := codec.Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, payload, decoded)
		})
	}

	_, err := ByName("zstd")
	assert.ErrorIs(t, err, ErrUnknownCodec)
}
