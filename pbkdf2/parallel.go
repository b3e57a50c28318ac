package pbkdf2

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DeriveKeyParallel is like DeriveKeyPRF, but derives up to workers blocks
// concurrently, each with its own PRF instance keyed with the password. The
// output is identical to DeriveKeyPRF. A workers value below 1 means
// runtime.GOMAXPROCS(0).
//
// The context is checked before each block is started and again once all
// blocks are done. A block that is already running is not interrupted, and no
// output is returned if ctx is canceled.
func DeriveKeyParallel(ctx context.Context, prf PRF, password, salt []byte, iterations, keyLength, workers int) ([]byte, error) {
	if err := checkParams(iterations, keyLength); err != nil {
		return nil, err
	}
	first, err := prf.New(password)
	if err != nil {
		return nil, err
	}
	hLen := first.Size()
	n, err := blockCount(keyLength, hLen)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if n == 1 || workers == 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dk := deriveKey(first, salt, iterations, keyLength, n)
		if err := ctx.Err(); err != nil {
			Zero(dk)
			return nil, err
		}
		return dk, nil
	}

	dk := make([]byte, n*hLen)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 1; i <= n; i++ {
		mac := first
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if i > 1 {
				var err error
				if mac, err = prf.New(password); err != nil {
					return err
				}
			}
			off := (i - 1) * hLen
			deriveBlock(dk[off:off], mac, blockMsg(salt), iterations, uint32(i))
			return nil
		})
	}
	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		Zero(dk)
		return nil, err
	}
	k := dup(dk[:keyLength])
	Zero(dk)
	return k, nil
}
