//
// Written by Maxim Khitrov (October 2012)
//

/*
Package pbkdf2 implements the PBKDF2 key derivation function, as described in
RFC 8018 (formerly RFC 2898), over any keyed pseudorandom function.

Password-Based Key Derivation Function 2 derives cryptographic keys of a
specified length from the provided password and salt values. Each block of
output is the XOR of c chained PRF applications, where c is the iteration count.
The higher the iteration count, the more difficult (time consuming) it is for an
attacker to brute-force the password/salt combination.

DeriveKey selects the PRF by name (see LookupPRF and PRFs), defaulting to
HMAC-SHA256. DeriveKeyParallel derives the blocks of long keys concurrently.

The package also provides an incremental implementation, which allows the key
derivation loop to resume execution from its previous state. This allows the
user to derive keys after 1000 and 2000 iterations, for example, without having
to recompute the first 1000 iterations twice. The incremental state is used to
implement time-based key derivation (see the Derive and Search methods), which
gradually increments the iteration count until the time limit is reached.
*/
package pbkdf2

import (
	"encoding/binary"
	"fmt"
	"hash"
	"math"
	"runtime"
	"time"
)

// precision determines the timing accuracy of Derive and Search methods by
// varying the exponential growth rate of the iteration count. The derivation
// begins with 1024 iterations and the count is incremented exponentially at the
// rate of 1/(2^precision). The minimum precision is 0 (100% growth rate) and
// the maximum is 10 (0.1% growth rate). The theoretical timing error is plus or
// minus timelimit*rate/(rate+2).
//
// A higher precision results in more accurate timing, but at the expense of
// having to make many additional calls to the callback function when searching
// for a previously derived key. A precision of 4 (6.25%) is a good compromise,
// which covers 2^32 iterations in 252 steps with a timing error of 3%.
const precision = 4

// maxBlocks is the largest block index that fits in the 32-bit counter.
const maxBlocks = math.MaxUint32

// DeriveKey derives a keyLength-byte key from the password and salt using
// iterations applications of the named PRF per block. An empty prfName selects
// DefaultPRF.
func DeriveKey(prfName string, password, salt []byte, iterations, keyLength int) ([]byte, error) {
	if err := checkParams(iterations, keyLength); err != nil {
		return nil, err
	}
	if prfName == "" {
		prfName = DefaultPRF
	}
	prf, err := LookupPRF(prfName)
	if err != nil {
		return nil, err
	}
	return DeriveKeyPRF(prf, password, salt, iterations, keyLength)
}

// DeriveKeyPRF is like DeriveKey, but takes a resolved PRF.
func DeriveKeyPRF(prf PRF, password, salt []byte, iterations, keyLength int) ([]byte, error) {
	if err := checkParams(iterations, keyLength); err != nil {
		return nil, err
	}
	mac, err := prf.New(password)
	if err != nil {
		return nil, err
	}
	n, err := blockCount(keyLength, mac.Size())
	if err != nil {
		return nil, err
	}
	return deriveKey(mac, salt, iterations, keyLength, n), nil
}

// deriveKey computes n blocks sequentially and truncates them to keyLength.
func deriveKey(mac hash.Hash, salt []byte, iterations, keyLength, n int) []byte {
	msg := blockMsg(salt)
	dk := make([]byte, 0, n*mac.Size())
	for i := 1; i <= n; i++ {
		dk = deriveBlock(dk, mac, msg, iterations, uint32(i))
	}
	k := dup(dk[:keyLength])
	Zero(dk)
	return k
}

// Key derives a key from the password, salt, and iteration count, returning a
// []byte of length dkLen that can be used as cryptographic key. This function
// provides compatibility with the golang.org/x/crypto/pbkdf2 package, except
// that it panics if iter or dkLen is less than 1.
func Key(pass, salt []byte, iter, dkLen int, h func() hash.Hash) []byte {
	return New(pass, salt, dkLen, h).Next(iter)
}

// Zero overwrites b with zeros. It should be used to erase passwords and
// derived keys once they are no longer needed.
func Zero(b []byte) {
	clear(b)
}

// checkParams validates the caller-supplied counts.
func checkParams(iterations, keyLength int) error {
	if iterations < 1 {
		return fmt.Errorf("%w: iteration count %d < 1", ErrInvalidArgument, iterations)
	}
	if keyLength < 1 {
		return fmt.Errorf("%w: key length %d < 1", ErrInvalidArgument, keyLength)
	}
	return nil
}

// blockCount returns ceil(keyLength/hLen).
func blockCount(keyLength, hLen int) (int, error) {
	n := keyLength / hLen
	if keyLength%hLen != 0 {
		n++
	}
	if uint64(n) > maxBlocks {
		return 0, fmt.Errorf("%w: derived key too long (%d bytes)", ErrInvalidArgument, keyLength)
	}
	return n, nil
}

// blockMsg returns salt || INT(0). The last four bytes are overwritten with
// the block index by deriveBlock.
func blockMsg(salt []byte) []byte {
	msg := make([]byte, len(salt)+4)
	copy(msg, salt)
	return msg
}

// deriveBlock appends T_i = U_1 ^ U_2 ^ ... ^ U_c to dst, where
// U_1 = PRF(salt || INT(i)) and U_k = PRF(U_{k-1}).
func deriveBlock(dst []byte, prf hash.Hash, msg []byte, c int, i uint32) []byte {
	putUint32(msg[len(msg)-4:], i)
	prf.Reset()
	prf.Write(msg)
	dst = prf.Sum(dst)
	t := dst[len(dst)-prf.Size():]
	u := dup(t)
	for k := 1; k < c; k++ {
		prf.Reset()
		prf.Write(u)
		u = prf.Sum(u[:0])
		xor(t, u)
	}
	Zero(u)
	return dst
}

// putUint32 writes i to b in big-endian byte order.
func putUint32(b []byte, i uint32) {
	binary.BigEndian.PutUint32(b, i)
}

// xor sets dst[j] ^= src[j] for every byte of dst.
func xor(dst, src []byte) {
	for j := range dst {
		dst[j] ^= src[j]
	}
}

type PBKDF2 struct {
	name  string    // PRF name
	prf   hash.Hash // Keyed PRF instance
	dkLen int       // Key length returned by key derivation methods
	salt  []byte    // Salt value used in the first iteration
	t     []byte    // Current T values (len >= dkLen, multiple of prf.Size())
	u     []byte    // Current U values (same len as t)
	iters int       // Current iteration count
}

// New returns a new PBKDF2 state initialized to zero iterations, using HMAC
// over hash h as the PRF. It panics if dkLen is less than 1 or too long for a
// 32-bit block counter.
func New(pass, salt []byte, dkLen int, h func() hash.Hash) *PBKDF2 {
	kdf, err := NewWithPRF(HMAC("HMAC", h), pass, salt, dkLen)
	if err != nil {
		panic(err)
	}
	return kdf
}

// NewWithPRF returns a new PBKDF2 state initialized to zero iterations. The
// PRF is keyed with pass once and reused for every subsequent iteration.
func NewWithPRF(prf PRF, pass, salt []byte, dkLen int) (*PBKDF2, error) {
	if err := checkParams(1, dkLen); err != nil {
		return nil, err
	}
	mac, err := prf.New(pass)
	if err != nil {
		return nil, err
	}
	if _, err = blockCount(dkLen, mac.Size()); err != nil {
		return nil, err
	}
	return &PBKDF2{name: prf.name, prf: mac, dkLen: dkLen, salt: dup(salt)}, nil
}

// Derive derives a new key in time d.
func (kdf *PBKDF2) Derive(d time.Duration) []byte {
	dk, _ := kdf.derive(d, precision, func([]byte) error { return nil })
	return dk
}

// Search tries to find a previously derived key. The callback function f is
// used to test the current key after each step in the derivation process. This
// test must be reasonably fast to maintain accurate derivation timing. The
// search stops when f returns a non-nil error or the time limit is reached. The
// correct key is found when f returns KeyFound.
//
// As a general rule, Search should be given more time than Derive, especially
// if the two operations are being performed on different computers. If Derive
// was given 1 second, a reasonable limit for Search is 3 to 5 seconds.
func (kdf *PBKDF2) Search(d time.Duration, f func(dk []byte) error) (dk []byte, err error) {
	if dk, err = kdf.derive(d, precision, f); err == KeyFound {
		err = nil
	} else {
		dk = nil
		if err == nil {
			err = ErrTimeout
		}
	}
	return
}

// Next runs the key derivation algorithm for c additional iterations and
// returns a copy of the new key.
func (kdf *PBKDF2) Next(c int) []byte {
	if c <= 0 {
		panic("pbkdf2: invalid iteration count")
	}
	prf := kdf.prf
	hLen := prf.Size()

	if kdf.iters == 0 {
		n, err := blockCount(kdf.dkLen, hLen)
		if err != nil {
			panic(err)
		}
		msg := blockMsg(kdf.salt)
		t := make([]byte, 0, 2*n*hLen)
		for i := 1; i <= n; i++ {
			t = deriveBlock(t, prf, msg, 1, uint32(i))
		}
		kdf.t, kdf.u = t, t[len(t):cap(t)]
		copy(kdf.u, kdf.t)
		c--
		kdf.iters = 1
	}

	t, u := kdf.t, kdf.u
	for i := 0; i < c; i++ {
		for j := 0; j < len(u); j += hLen {
			prf.Reset()
			prf.Write(u[j : j+hLen])
			prf.Sum(u[:j])
		}
		xor(t, u)
	}
	kdf.iters += c
	return dup(t[:kdf.dkLen])
}

// PRF returns the name of the PRF.
func (kdf *PBKDF2) PRF() string {
	return kdf.name
}

// Salt returns a copy of the current salt value.
func (kdf *PBKDF2) Salt() []byte {
	return dup(kdf.salt)
}

// Size returns the derived key size.
func (kdf *PBKDF2) Size() int {
	return kdf.dkLen
}

// Iters returns the total number of iterations performed so far.
func (kdf *PBKDF2) Iters() int {
	return kdf.iters
}

// Reset returns kdf to the initial state at zero iterations. Salt and dkLen
// parameters for subsequent iterations can be changed by passing non-nil and
// non-zero values, respectively. It panics if dkLen is too long for a 32-bit
// block counter.
func (kdf *PBKDF2) Reset(salt []byte, dkLen int) {
	if dkLen > 0 {
		if _, err := blockCount(dkLen, kdf.prf.Size()); err != nil {
			panic(err)
		}
		kdf.dkLen = dkLen
	}
	if salt != nil {
		kdf.salt = dup(salt)
	}
	Zero(kdf.t[:cap(kdf.t)])
	kdf.t = nil
	kdf.u = nil
	kdf.iters = 0
}

// derive performs time-based key derivation.
func (kdf *PBKDF2) derive(d time.Duration, p uint, f func(dk []byte) error) (dk []byte, err error) {
	if p > 10 {
		panic("pbkdf2: invalid derivation precision")
	}
	kdf.Reset(nil, 0)
	ch := make(chan struct{})
	go func() {
		defer close(ch)
		runtime.LockOSThread()
		r := 1.0 / float64(uint(1)<<p)
		d -= time.Duration(float64(d) * r / (r + 2))
		t := timer{time.Now(), utime()}
		dk = kdf.Next(1024)
		for {
			if err = f(dk); err != nil || t.elapsed(d) {
				return
			}
			dk = kdf.Next(kdf.iters >> p)
		}
	}()
	<-ch
	return
}

type timer struct {
	wall time.Time
	user time.Duration
}

// elapsed returns true when time d has elapsed from the point when the timer
// was created. Timing is done according to the user CPU time of the current
// thread with the wall clock time acting as a backup. Systems that don't
// provide per-thread timing information use the process CPU time instead. The
// wall clock time defines lower (d) and upper (2*d) limits as a workaround for
// inaccurate CPU time accounting on some systems (e.g. Windows).
func (t *timer) elapsed(d time.Duration) bool {
	wall := time.Since(t.wall)
	emin := wall >= d
	if emin && wall < d<<1 {
		return utime()-t.user >= d
	}
	return emin
}

func dup(b []byte) []byte {
	t := make([]byte, len(b))
	copy(t, b)
	return t
}
