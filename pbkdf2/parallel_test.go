package pbkdf2

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestDeriveKeyParallel(t *testing.T) {
	pass, salt := []byte("password"), []byte("salt")
	for _, name := range []string{"HmacSHA1", "HmacSHA256", "HmacSHA3-512", "BLAKE2b-256"} {
		prf, err := LookupPRF(name)
		if err != nil {
			t.Fatal(err)
		}
		for _, dkLen := range []int{1, 32, 33, 97, 300} {
			want, err := DeriveKeyPRF(prf, pass, salt, 50, dkLen)
			if err != nil {
				t.Fatal(err)
			}
			for _, workers := range []int{0, 1, 2, 7} {
				got, err := DeriveKeyParallel(context.Background(), prf, pass, salt, 50, dkLen, workers)
				if err != nil {
					t.Fatalf("DeriveKeyParallel(%s, %d, %d) unexpected error: %v", name, dkLen, workers, err)
				}
				if !bytes.Equal(got, want) {
					t.Errorf("DeriveKeyParallel(%s, %d, %d) expected % x; got % x", name, dkLen, workers, want, got)
				}
			}
		}
	}
}

func TestDeriveKeyParallelErrors(t *testing.T) {
	prf, _ := LookupPRF(DefaultPRF)
	ctx := context.Background()
	if _, err := DeriveKeyParallel(ctx, prf, nil, nil, 0, 32, 2); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("iterations=0 expected ErrInvalidArgument; got %v", err)
	}
	if _, err := DeriveKeyParallel(ctx, prf, nil, nil, 1, 0, 2); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("keyLength=0 expected ErrInvalidArgument; got %v", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	for _, test := range []struct{ dkLen, workers int }{
		{100, 2},
		{100, 1},
		{16, 4},
		{16, 1},
	} {
		dk, err := DeriveKeyParallel(canceled, prf, nil, nil, 1, test.dkLen, test.workers)
		if dk != nil || !errors.Is(err, context.Canceled) {
			t.Errorf("canceled context (%d, %d) expected context.Canceled; got % x (%v)",
				test.dkLen, test.workers, dk, err)
		}
	}

	var e *KeyInitError
	blake, _ := LookupPRF("BLAKE2b-256")
	if _, err := DeriveKeyParallel(ctx, blake, make([]byte, 65), nil, 1, 100, 4); !errors.As(err, &e) {
		t.Errorf("long BLAKE2b key expected KeyInitError; got %v", err)
	}
}
