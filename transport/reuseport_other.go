//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package transport

import "syscall"

// reusePortControl is a no-op where SO_REUSEPORT isn't available.
func reusePortControl(_, _ string, _ syscall.RawConn) error {
	return nil
}
