//go:build (linux || freebsd || openbsd || netbsd || dragonfly || darwin) && !cgo

package clipboard

import "image"

// The native clipboard bindings need cgo on these platforms.

func WriteImage(image.Image) error { return errCGODisabled }
func ReadImage() (image.Image, error) { return nil, errCGODisabled }
func WriteText(string) error { return errCGODisabled }
func ReadText() (string, error) { return "", errCGODisabled }
