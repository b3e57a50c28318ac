// Package codec converts salts and derived keys to and from their text forms.
package codec

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Encoding names a text representation of a byte string.
type Encoding string

const (
	Hex       Encoding = "hex"
	Base64    Encoding = "base64"
	Base64URL Encoding = "base64url"
	UTF8      Encoding = "utf8"
)

type codec struct {
	encode func([]byte) string
	decode func(string) ([]byte, error)
}

var codecs = map[Encoding]codec{
	Hex:       {hex.EncodeToString, hex.DecodeString},
	Base64:    {base64.StdEncoding.EncodeToString, base64.StdEncoding.DecodeString},
	Base64URL: {base64.RawURLEncoding.EncodeToString, decodeBase64URL},
	UTF8:      {func(b []byte) string { return string(b) }, func(s string) ([]byte, error) { return []byte(s), nil }},
}

// Parse returns the Encoding named by s. Matching is case-insensitive.
func Parse(s string) (Encoding, error) {
	e := Encoding(strings.ToLower(strings.TrimSpace(s)))
	switch e {
	case "raw", "text", "string":
		e = UTF8
	case "b64":
		e = Base64
	}
	if _, ok := codecs[e]; !ok {
		return "", fmt.Errorf("unknown encoding %q (want one of %s)", s, strings.Join(Names(), ", "))
	}
	return e, nil
}

// Names returns the sorted canonical encoding names.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for e := range codecs {
		names = append(names, string(e))
	}
	sort.Strings(names)
	return names
}

// Encode returns the text form of b.
func (e Encoding) Encode(b []byte) (string, error) {
	c, ok := codecs[e]
	if !ok {
		return "", fmt.Errorf("unknown encoding %q", string(e))
	}
	return c.encode(b), nil
}

// Decode returns the bytes represented by s.
func (e Encoding) Decode(s string) ([]byte, error) {
	c, ok := codecs[e]
	if !ok {
		return nil, fmt.Errorf("unknown encoding %q", string(e))
	}
	b, err := c.decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", e, err)
	}
	return b, nil
}

// decodeBase64URL accepts both padded and unpadded input.
func decodeBase64URL(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}
