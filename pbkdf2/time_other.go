//go:build !unix && !windows

package pbkdf2

import "time"

var start = time.Now()

// utime falls back to wall clock time on systems without CPU time accounting.
func utime() time.Duration {
	return time.Since(start)
}
