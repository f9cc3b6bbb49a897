package cli

import (
	"os"
	"path/filepath"

	"github.com/vacayhq/vacay/internal/client/export"
	"github.com/vacayhq/vacay/internal/filex"
)

// dirSaver writes exported files into a local directory. It is the desktop
// stand-in for a device's download storage.
type dirSaver struct {
	dir string
}

func newDirSaver(dir string) (*dirSaver, error) {
	resolved, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &dirSaver{dir: resolved}, nil
}

func (s *dirSaver) SaveFile(name, mime string, data []byte) error {
	return os.WriteFile(filepath.Join(s.dir, name), data, 0o644)
}

// stdoutNotifier prints export progress messages to the terminal.
type stdoutNotifier struct{}

func (stdoutNotifier) Notify(msg string) {
	printlnFn(msg)
}

// hostProfile describes the environment the CLI runs in. A terminal client
// has no mobile browser surface, so everything routes through the plain
// download path.
func hostProfile() export.DeviceProfile {
	return export.DeviceProfile{}
}
