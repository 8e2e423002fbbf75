// +build !linux

package device

import (
	"io"
	"os"
)

func open(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY, 0)
}
