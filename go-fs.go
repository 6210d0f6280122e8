package vff

import (
	"github.com/spf13/afero"
)

// IOFS returns the container as io/fs.FS compatible filesystem.
// Names follow the io/fs rules: "." is the root, no leading slash.
func (fs *Fs) IOFS() afero.IOFS {
	return afero.NewIOFS(fs)
}
