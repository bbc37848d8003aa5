//go:build !cgo

package audio

import "errors"

var ErrNoDevice = errors.New("audio output needs a cgo build")

func Open(*Synth) (func(), error) {
	return nil, ErrNoDevice
}
