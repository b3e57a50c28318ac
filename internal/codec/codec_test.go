package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Encoding
	}{
		{"hex", Hex},
		{"HEX", Hex},
		{" base64 ", Base64},
		{"b64", Base64},
		{"base64url", Base64URL},
		{"utf8", UTF8},
		{"raw", UTF8},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Parse("base32")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base32")
}

func TestEncodeDecode(t *testing.T) {
	data := []byte{0x00, 0xfb, 0xff, 'a'}
	tests := []struct {
		enc  Encoding
		text string
	}{
		{Hex, "00fbff61"},
		{Base64, "APv/YQ=="},
		{Base64URL, "APv_YQ"},
	}
	for _, tt := range tests {
		t.Run(string(tt.enc), func(t *testing.T) {
			s, err := tt.enc.Encode(data)
			require.NoError(t, err)
			assert.Equal(t, tt.text, s)

			b, err := tt.enc.Decode(tt.text)
			require.NoError(t, err)
			assert.Equal(t, data, b)
		})
	}

	b, err := Base64URL.Decode("APv_YQ==")
	require.NoError(t, err)
	assert.Equal(t, data, b)

	b, err = UTF8.Decode("salt")
	require.NoError(t, err)
	assert.Equal(t, []byte("salt"), b)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Hex.Decode("zz")
	assert.ErrorContains(t, err, "invalid hex")

	_, err = Base64.Decode("!!")
	assert.ErrorContains(t, err, "invalid base64")

	_, err = Encoding("rot13").Decode("x")
	assert.Error(t, err)

	_, err = Encoding("rot13").Encode(nil)
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"base64", "base64url", "hex", "utf8"}, Names())
}
