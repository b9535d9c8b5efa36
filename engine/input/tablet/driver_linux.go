//go:build linux

package tablet

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"github.com/hubastard/groveinput/engine/input"
)

// eventSize is the size of struct input_event: a timeval, then type, code
// and value.
const eventSize = int(unsafe.Sizeof(unix.Timeval{})) + 8

// ioctl request encoding (Linux _IOC macro).
const (
	iocNRShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30

	iocRead = 2
)

func ioc(dir, typ, nr, size uint32) uintptr {
	return uintptr(dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift)
}

type absInfo struct {
	Value      int32
	Min        int32
	Max        int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func getAbsInfo(fd, code int) (absRange, error) {
	var info absInfo
	req := ioc(iocRead, 'E', uint32(0x40+code), uint32(unsafe.Sizeof(info)))
	if err := ioctl(fd, req, unsafe.Pointer(&info)); err != nil {
		return absRange{}, err
	}
	return absRange{min: info.Min, max: info.Max, resolution: info.Resolution}, nil
}

func getName(fd int) string {
	var buf [256]byte
	req := ioc(iocRead, 'E', 0x06, uint32(len(buf)))
	if err := ioctl(fd, req, unsafe.Pointer(&buf[0])); err != nil {
		return ""
	}
	return unix.ByteSliceToString(buf[:])
}

func hasKey(fd int, code int) bool {
	var bits [0x300 / 8]byte
	req := ioc(iocRead, 'E', uint32(0x20+evKey), uint32(len(bits)))
	if err := ioctl(fd, req, unsafe.Pointer(&bits[0])); err != nil {
		return false
	}
	return bits[code/8]&(1<<(code%8)) != 0
}

type evdevDevice struct {
	fd      int
	path    string
	info    Device
	builder reportBuilder
}

// evdevDriver reads pen and pad devices straight from /dev/input.
type evdevDriver struct {
	mu      sync.Mutex
	devices []*evdevDevice
	cancel  context.CancelFunc
	group   *errgroup.Group
}

func newPlatformDriver() Driver { return &evdevDriver{} }

func (d *evdevDriver) Start(l Listener) error {
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return fmt.Errorf("tablet: list devices: %w", err)
	}
	var found []*evdevDevice
	for _, p := range paths {
		if dev := probe(p); dev != nil {
			found = append(found, dev)
		}
	}
	if len(found) == 0 {
		return ErrNoTablet
	}

	infos := make([]Device, len(found))
	for i, dev := range found {
		infos[i] = dev.info
	}
	l.TabletsChanged(infos)

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	for _, dev := range found {
		g.Go(func() error { return dev.read(ctx, l) })
	}

	d.mu.Lock()
	d.devices, d.cancel, d.group = found, cancel, g
	d.mu.Unlock()
	return nil
}

// probe opens path and keeps it if it is a pen or a tablet pad.
func probe(path string) *evdevDevice {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil
	}
	name := getName(fd)
	dev := &evdevDevice{fd: fd, path: path}

	pressure, perr := getAbsInfo(fd, absPressure)
	switch {
	case perr == nil && pressure.max > 0 && hasKey(fd, btnToolPen):
		x, _ := getAbsInfo(fd, absX)
		y, _ := getAbsInfo(fd, absY)
		dev.builder = reportBuilder{x: x, y: y, pressure: pressure}
		dev.info = Device{
			Name:      name,
			Digitizer: input.Vec2{X: x.mm(x.max), Y: y.mm(y.max)},
		}
		return dev
	case strings.HasSuffix(name, "Pad") && hasKey(fd, btn0):
		dev.info = Device{Name: name}
		return dev
	}
	unix.Close(fd)
	return nil
}

func (dev *evdevDevice) read(ctx context.Context, l Listener) error {
	var (
		parser = eventReader{size: eventSize}
		buf    = make([]byte, eventSize*64)
		fds    = []unix.PollFd{{Fd: int32(dev.fd), Events: unix.POLLIN}}
	)
	for ctx.Err() == nil {
		n, err := unix.Poll(fds, 100)
		if errors.Is(err, unix.EINTR) || n == 0 {
			continue
		}
		if err != nil {
			return fmt.Errorf("tablet: poll %s: %w", dev.path, err)
		}
		n, err = unix.Read(dev.fd, buf)
		if errors.Is(err, unix.EAGAIN) {
			continue
		}
		if err != nil {
			return fmt.Errorf("tablet: read %s: %w", dev.path, err)
		}
		parser.feed(buf[:n], func(typ, code uint16, value int32) {
			dev.builder.event(typ, code, value, l.DeviceReported)
		})
	}
	return nil
}

func (d *evdevDriver) Close() error {
	d.mu.Lock()
	devices, cancel, g := d.devices, d.cancel, d.group
	d.devices, d.cancel, d.group = nil, nil, nil
	d.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	err := g.Wait()
	for _, dev := range devices {
		unix.Close(dev.fd)
	}
	return err
}
