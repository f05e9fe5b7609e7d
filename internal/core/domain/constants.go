package domain

import "errors"

const (
	CanvasSize            = 2048
	DefaultPaddingPercent = 15
)

var (
	ErrMissingInput   = errors.New("source icon not found")
	ErrDecode         = errors.New("could not decode source icon")
	ErrProcessing     = errors.New("could not process icon")
	ErrInvalidPadding = errors.New("padding percent must be in [0, 100)")
)
