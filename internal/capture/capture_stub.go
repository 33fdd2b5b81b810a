//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"context"
	"image"
)

type stubBackend struct{}

var active backend = stubBackend{}

func (stubBackend) portal(context.Context, Options) (image.Image, error) {
	return nil, ErrUnsupported
}

func (stubBackend) root(context.Context) (image.Image, error) {
	return nil, ErrUnsupported
}

func (stubBackend) monitors() ([]Monitor, error) {
	return nil, ErrUnsupported
}
