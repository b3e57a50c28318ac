//
// Written by Maxim Khitrov (October 2012)
//

//go:build freebsd || linux

package pbkdf2

import "golang.org/x/sys/unix"

var rusageWho = unix.RUSAGE_THREAD

func init() {
	var u unix.Rusage
	if unix.Getrusage(rusageWho, &u) == unix.EINVAL {
		rusageWho = unix.RUSAGE_SELF
	}
}
