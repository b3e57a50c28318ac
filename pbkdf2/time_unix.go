//
// Written by Maxim Khitrov (October 2012)
//

//go:build unix

package pbkdf2

import (
	"time"

	"golang.org/x/sys/unix"
)

// utime returns the user CPU time consumed by the calling thread, or by the
// whole process where per-thread accounting is unavailable.
func utime() time.Duration {
	var u unix.Rusage
	if err := unix.Getrusage(rusageWho, &u); err != nil {
		panic(err)
	}
	return time.Duration(u.Utime.Nano())
}
