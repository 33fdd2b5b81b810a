//go:build !(linux || freebsd || openbsd || netbsd || dragonfly || darwin || windows)

package clipboard

import "image"

func WriteImage(image.Image) error { return errUnsupported }
func ReadImage() (image.Image, error) { return nil, errUnsupported }
func WriteText(string) error { return errUnsupported }
func ReadText() (string, error) { return "", errUnsupported }
