package fsops

import (
	"os"
	"sync"

	"github.com/Isaac-Flath/agent-example/internal/safety"
)

var (
	rootOnce     sync.Once
	absScopeRoot string
	initRootErr  error
)

func initRoot() {
	absScopeRoot, initRootErr = safety.ResolveScopeRoot(os.Getenv("AGENT_WORKDIR"))
}

// ScopeRoot returns the cached absolute scoped directory, initialising it once
// on first use from AGENT_WORKDIR (defaulting to the current directory).
func ScopeRoot() (string, error) {
	rootOnce.Do(initRoot)
	return absScopeRoot, initRootErr
}
