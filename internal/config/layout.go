package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrRuntimeNotFound indicates the ARES runtime folder could not be located.
var ErrRuntimeNotFound = errors.New("runtime folder does not exist")

// RuntimeLayout describes the fixed directory structure of an ARES runtime
// installation. All paths are derived once from the root and never change
// during a run.
type RuntimeLayout struct {
	// Root is the runtime folder itself.
	Root string
	// ImportRoot is the watched import tree the server ingests from.
	ImportRoot string
	// ServerLog is the server log file polled for import verdicts.
	ServerLog string
}

// ResolveLayout locates the ARES runtime folder and derives the layout
// from it. An explicit path wins over $ARES_RUNTIME, which wins over
// $HOME/ARES_RUNTIME. The folder must already exist.
func ResolveLayout(explicit string) (RuntimeLayout, error) {
	root := explicit
	if root == "" {
		root = os.Getenv("ARES_RUNTIME")
	}
	if root == "" {
		if home, err := os.UserHomeDir(); err == nil {
			root = filepath.Join(home, "ARES_RUNTIME")
		}
	}
	if root == "" {
		return RuntimeLayout{}, fmt.Errorf("%w: no runtime folder configured", ErrRuntimeNotFound)
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return RuntimeLayout{}, fmt.Errorf("%w: %s", ErrRuntimeNotFound, root)
	}

	return RuntimeLayout{
		Root:       root,
		ImportRoot: filepath.Join(root, "import"),
		ServerLog:  filepath.Join(root, "AdminServer", "ares_server.log"),
	}, nil
}
