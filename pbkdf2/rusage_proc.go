//
// Written by Maxim Khitrov (October 2012)
//

//go:build unix && !freebsd && !linux

package pbkdf2

import "golang.org/x/sys/unix"

var rusageWho = unix.RUSAGE_SELF
