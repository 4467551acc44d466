//go:build tinygo || !cgo

package glscene

import (
	"context"
	"errors"

	"github.com/cs330/stilllife"
)

var errNoCGO = errors.New("the OpenGL viewer requires CGo and is not supported on TinyGo")

// Run opens a window and renders scene until the window is closed or ctx is done.
func Run(ctx context.Context, cfg Config, scene *stilllife.Scene) error {
	return errNoCGO
}
