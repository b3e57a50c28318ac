package pbkdf2

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"sort"
	"strings"

	"github.com/tjfoc/gmsm/sm3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// DefaultPRF is the PRF used by DeriveKey when no name is given.
const DefaultPRF = "HmacSHA256"

// PRF is a keyed pseudorandom function. Each call to New returns an
// independent instance bound to the key, so a PRF value may be shared between
// goroutines even though the instances it creates may not.
type PRF struct {
	name   string
	newMAC func(key []byte) (hash.Hash, error)
}

// HMAC returns a PRF that computes HMAC over hash h.
func HMAC(name string, h func() hash.Hash) PRF {
	return PRF{name, func(key []byte) (hash.Hash, error) {
		return hmac.New(h, key), nil
	}}
}

// Keyed returns a PRF for a MAC that accepts the password directly as its key.
// Constructor errors are reported as *KeyInitError.
func Keyed(name string, f func(key []byte) (hash.Hash, error)) PRF {
	return PRF{name, f}
}

// Name returns the PRF name.
func (p PRF) Name() string {
	return p.name
}

// New returns a new PRF instance keyed with key. Errors and panics raised by
// the underlying constructor are converted to *KeyInitError.
func (p PRF) New(key []byte) (h hash.Hash, err error) {
	if p.newMAC == nil {
		return nil, fmt.Errorf("%w: undefined PRF", ErrInvalidArgument)
	}
	defer func() {
		if r := recover(); r != nil {
			h, err = nil, &KeyInitError{p.name, fmt.Errorf("%v", r)}
		}
	}()
	if h, err = p.newMAC(key); err != nil {
		return nil, &KeyInitError{p.name, err}
	}
	if h == nil || h.Size() <= 0 {
		return nil, &KeyInitError{p.name, fmt.Errorf("invalid output size")}
	}
	return h, nil
}

// catalogue maps lookup keys (see prfKey) to built-in PRFs.
var catalogue = make(map[string]PRF)

func init() {
	for _, p := range []PRF{
		HMAC("HmacMD4", md4.New),
		HMAC("HmacMD5", md5.New),
		HMAC("HmacRIPEMD160", ripemd160.New),
		HMAC("HmacSHA1", sha1.New),
		HMAC("HmacSHA224", sha256.New224),
		HMAC("HmacSHA256", sha256.New),
		HMAC("HmacSHA384", sha512.New384),
		HMAC("HmacSHA512", sha512.New),
		HMAC("HmacSHA512/224", sha512.New512_224),
		HMAC("HmacSHA512/256", sha512.New512_256),
		HMAC("HmacSHA3-224", sha3.New224),
		HMAC("HmacSHA3-256", sha3.New256),
		HMAC("HmacSHA3-384", sha3.New384),
		HMAC("HmacSHA3-512", sha3.New512),
		HMAC("HmacBLAKE2b-256", unkeyed(blake2b.New256)),
		HMAC("HmacBLAKE2b-384", unkeyed(blake2b.New384)),
		HMAC("HmacBLAKE2b-512", unkeyed(blake2b.New512)),
		HMAC("HmacSM3", newSM3),
		Keyed("BLAKE2b-256", blake2b.New256),
		Keyed("BLAKE2b-512", blake2b.New512),
	} {
		catalogue[prfKey(p.name)] = p
	}
}

// LookupPRF returns the built-in PRF with the given name. Matching ignores
// case and '-' or '_' separators. The "Hmac" prefix may be omitted, except for
// the BLAKE2b family: "BLAKE2b-256" and "BLAKE2b-512" name the keyed BLAKE2b
// MACs, and the HMAC variants must be spelled "HmacBLAKE2b-*".
func LookupPRF(name string) (PRF, error) {
	if !validName(name) {
		return PRF{}, fmt.Errorf("%w: malformed PRF name %q", ErrInvalidArgument, name)
	}
	k := prfKey(name)
	if p, ok := catalogue[k]; ok {
		return p, nil
	}
	if !strings.HasPrefix(k, "blake2b") {
		if p, ok := catalogue["hmac"+k]; ok {
			return p, nil
		}
	}
	return PRF{}, UnsupportedPRFError(name)
}

// PRFs returns the sorted names of all built-in PRFs.
func PRFs() []string {
	names := make([]string, 0, len(catalogue))
	for _, p := range catalogue {
		names = append(names, p.name)
	}
	sort.Strings(names)
	return names
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case c == '-', c == '_', c == '/':
		default:
			return false
		}
	}
	return true
}

var separators = strings.NewReplacer("-", "", "_", "")

func prfKey(name string) string {
	return separators.Replace(strings.ToLower(name))
}

// unkeyed adapts a BLAKE2b constructor for use as the HMAC hash.
func unkeyed(f func(key []byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := f(nil)
		if err != nil {
			panic(err)
		}
		return h
	}
}

// sm3Hash fixes Sum in github.com/tjfoc/gmsm/sm3, which hashes its argument
// instead of appending the digest to it.
type sm3Hash struct {
	hash.Hash
}

func newSM3() hash.Hash {
	return sm3Hash{sm3.New()}
}

func (h sm3Hash) Sum(b []byte) []byte {
	return append(b, h.Hash.Sum(nil)...)
}
