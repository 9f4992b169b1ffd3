package system

import (
	"errors"
	"fmt"
	"net"

	"github.com/jackpal/gateway"
)

const (
	InterfaceAny     = "any"
	InterfaceAll     = "all"
	InterfaceDefault = "default"
)

var ErrInterfaceNotFound = errors.New("interface not found")

// ResolveInterface maps a user supplied interface name to the interface to
// bind. A nil interface with a nil error means capture on every interface.
func ResolveInterface(name string) (*net.Interface, error) {
	switch name {
	case "", InterfaceAny, InterfaceAll:
		return nil, nil
	case InterfaceDefault:
		return FindDefaultInterface()
	}

	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInterfaceNotFound, name, err)
	}

	return iface, nil
}

// FindDefaultInterface returns the interface that owns the local address of
// the default route. When the routing table cannot be read it falls back to
// asking the kernel which source address a UDP socket towards a public
// resolver would use. No packets are sent either way.
func FindDefaultInterface() (*net.Interface, error) {
	localIP, err := gateway.DiscoverInterface()
	if err != nil {
		localIP, err = dialLocalIP()
		if err != nil {
			return nil, err
		}
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("could not get network interfaces: %w", err)
	}

	iface := matchInterface(localIP, ifaces, func(i net.Interface) ([]net.Addr, error) {
		return i.Addrs()
	})
	if iface == nil {
		return nil, fmt.Errorf(
			"%w: no interface holds default route address %s",
			ErrInterfaceNotFound,
			localIP,
		)
	}

	return iface, nil
}

func dialLocalIP() (net.IP, error) {
	servers := []string{
		"8.8.8.8:53",
		"1.1.1.1:53",
		"9.9.9.9:53",
	}

	var conn net.Conn
	var err error
	for _, server := range servers {
		conn, err = net.Dial("udp", server)
		if err == nil {
			break
		}
	}

	if err != nil {
		return nil, fmt.Errorf("could not determine default route: %w", err)
	}
	defer func() { _ = conn.Close() }()

	localAddr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return nil, fmt.Errorf("could not determine local address from UDP connection")
	}

	return localAddr.IP, nil
}

func matchInterface(
	ip net.IP,
	ifaces []net.Interface,
	addrs func(net.Interface) ([]net.Addr, error),
) *net.Interface {
	for _, iface := range ifaces {
		as, err := addrs(iface)
		if err != nil {
			continue
		}
		for _, a := range as {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.Equal(ip) {
				return &iface
			}
		}
	}

	return nil
}
