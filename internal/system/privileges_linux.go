package system

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// CheckPrivileges reports whether the process may open a raw packet socket.
// CAP_NET_RAW without root is not detected here; the bind itself will
// succeed in that case and the check can be skipped by the caller.
func CheckPrivileges() error {
	if euid := unix.Geteuid(); euid != 0 {
		return fmt.Errorf(
			"%w: raw sockets need root (euid %d), try running with sudo",
			ErrInsufficientPrivileges,
			euid,
		)
	}

	return nil
}
