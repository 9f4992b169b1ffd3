package system

import "errors"

var ErrInsufficientPrivileges = errors.New("insufficient privileges for live capture")
