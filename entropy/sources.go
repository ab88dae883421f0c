package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"os"
	"os/user"
	"time"

	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/load"
	"github.com/shirou/gopsutil/mem"
	"github.com/valyala/fastrand"

	"github.com/safebeam/randbase/container"
)

// fastSource supplies bytes from a fast, non-cryptographic generator. It adds
// variation between calls, not security.
type fastSource struct {
	size int
}

func (s *fastSource) Name() string { return "fast rng" }

func (s *fastSource) Bytes() ([]byte, error) {
	if s.size <= 0 {
		return nil, nil
	}
	b := make([]byte, s.size)
	for i := 0; i < len(b); i += 4 {
		v := fastrand.Uint32()
		for j := 0; j < 4 && i+j < len(b); j++ {
			b[i+j] = byte(v >> (8 * j))
		}
	}
	return b, nil
}

// osSource reads from the cryptographic random device of the operating
// system. It may block until the device is ready.
type osSource struct {
	size int
}

func (s *osSource) Name() string { return "os rng" }

func (s *osSource) Bytes() ([]byte, error) {
	b := make([]byte, s.size)
	n, err := rand.Read(b)
	if err != nil {
		return nil, err
	}
	if n != s.size {
		return nil, fmt.Errorf("got only %d of %d bytes", n, s.size)
	}
	return b, nil
}

// diagnosticFiles reads OS diagnostic text with timer and interrupt state.
// The files are absent on most non-Linux platforms, which is fine.
type diagnosticFiles struct{}

func (s *diagnosticFiles) Name() string { return "diagnostic files" }

func (s *diagnosticFiles) Bytes() ([]byte, error) {
	buf := container.New()
	for _, fname := range []string{"/proc/timer_list", "/proc/stat"} {
		data, err := os.ReadFile(fname)
		if err == nil {
			buf.Append(data)
		}
	}
	if buf.Length() == 0 {
		return nil, errors.New("no diagnostic files readable")
	}
	return buf.CompileData(), nil
}

// systemInfo adds low-entropy system diagnostics: host details, memory and
// load state. Different between hosts and somewhat different between calls.
type systemInfo struct{}

func (s *systemInfo) Name() string { return "system info" }

func (s *systemInfo) Bytes() ([]byte, error) {
	buf := container.New()
	if info, err := host.Info(); err == nil {
		buf.AppendString(fmt.Sprintf("%v", info))
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		buf.AppendString(fmt.Sprintf("%v", vm))
	}
	if avg, err := load.Avg(); err == nil {
		buf.AppendString(fmt.Sprintf("%v", avg))
	}
	if buf.Length() == 0 {
		return nil, errors.New("no system info available")
	}
	return buf.CompileData(), nil
}

// clock adds the current wall clock time.
type clock struct{}

func (s *clock) Name() string { return "time" }

func (s *clock) Bytes() ([]byte, error) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(time.Now().UnixNano()))
	return b, nil
}

// networkInterfaces adds the installed network interfaces, different between
// hosts.
type networkInterfaces struct{}

func (s *networkInterfaces) Name() string { return "network interfaces" }

func (s *networkInterfaces) Bytes() ([]byte, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	buf := container.New()
	for _, iface := range ifaces {
		buf.AppendInt(int64(iface.MTU))
		buf.AppendString(iface.Name)
		buf.Append(iface.HardwareAddr)
		buf.AppendInt(int64(iface.Flags))
	}
	return buf.CompileData(), nil
}

// userIdentity adds account details of the current user.
type userIdentity struct{}

func (s *userIdentity) Name() string { return "user identity" }

func (s *userIdentity) Bytes() ([]byte, error) {
	u, err := user.Current()
	if err != nil {
		return nil, err
	}
	buf := container.New()
	buf.AppendString(u.Uid)
	buf.AppendString(u.Gid)
	buf.AppendString(u.Username)
	buf.AppendString(u.Name)
	buf.AppendString(u.HomeDir)
	return buf.CompileData(), nil
}

// process adds the process ID.
type process struct{}

func (s *process) Name() string { return "process id" }

func (s *process) Bytes() ([]byte, error) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(os.Getpid()))
	return b, nil
}
