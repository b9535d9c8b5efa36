//go:build !linux

package tablet

type noDriver struct{}

func newPlatformDriver() Driver { return noDriver{} }

func (noDriver) Start(Listener) error { return ErrNoTablet }
func (noDriver) Close() error         { return nil }
