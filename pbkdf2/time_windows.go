//
// Written by Maxim Khitrov (October 2012)
//

package pbkdf2

import (
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

/*
Note: GetThreadTimes function may return inaccurate values when the calling
thread is frequently interrupted prior to consuming all of its quantum. This
shouldn't be a huge problem for PBKDF2 calculation since it doesn't enter any
wait states.

http://blog.kalmbachnet.de/?postid=28
*/

var procGetThreadTimes = windows.NewLazySystemDLL("kernel32.dll").NewProc("GetThreadTimes")

func utime() time.Duration {
	var creation, exit, kernel, user windows.Filetime
	r1, _, e1 := procGetThreadTimes.Call(uintptr(windows.CurrentThread()),
		uintptr(unsafe.Pointer(&creation)), uintptr(unsafe.Pointer(&exit)),
		uintptr(unsafe.Pointer(&kernel)), uintptr(unsafe.Pointer(&user)))
	if r1 == 0 {
		panic(e1)
	}
	t := uint64(user.HighDateTime)<<32 | uint64(user.LowDateTime)
	return time.Duration(t * 100)
}
