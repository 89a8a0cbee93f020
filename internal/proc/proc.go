// Package proc walks the ancestor chain of the current process.
package proc

import (
	"os"

	ps "github.com/mitchellh/go-ps"
)

// DefaultMaxDepth bounds upward traversal of the process tree.
const DefaultMaxDepth = 10

// Ancestor is one process on the parent chain, ordered nearest-first.
type Ancestor struct {
	PID        int
	Executable string
}

// process is the traversal view of one process table entry.
type process struct {
	pid        int
	ppid       int
	executable string
}

// lookupFunc resolves one pid to its table entry; ok=false ends the walk.
type lookupFunc func(pid int) (process, bool)

// Ancestors returns the parent chain of the current process, capped at
// maxDepth hops. The walk terminates on a missing parent or a repeated pid.
func Ancestors(maxDepth int) []Ancestor {
	return ancestorsFrom(os.Getpid(), maxDepth, systemLookup)
}

// ExecutableName returns the executable name owning pid when resolvable.
func ExecutableName(pid int) (string, bool) {
	entry, ok := systemLookup(pid)
	if !ok {
		return "", false
	}
	return entry.executable, true
}

func ancestorsFrom(startPID, maxDepth int, lookup lookupFunc) []Ancestor {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	seen := map[int]struct{}{startPID: {}}
	ancestors := make([]Ancestor, 0, maxDepth)

	current, ok := lookup(startPID)
	if !ok {
		return ancestors
	}

	for range maxDepth {
		parentPID := current.ppid
		if parentPID <= 0 {
			break
		}
		if _, repeated := seen[parentPID]; repeated {
			break
		}
		seen[parentPID] = struct{}{}

		parent, ok := lookup(parentPID)
		if !ok {
			break
		}

		ancestors = append(ancestors, Ancestor{PID: parent.pid, Executable: parent.executable})
		current = parent
	}

	return ancestors
}

// systemLookup reads the live process table. Lookup failures are normal
// during a scan (the process may have exited) and simply end the walk.
func systemLookup(pid int) (process, bool) {
	entry, err := ps.FindProcess(pid)
	if err != nil || entry == nil {
		return process{}, false
	}
	return process{
		pid:        entry.Pid(),
		ppid:       entry.PPid(),
		executable: entry.Executable(),
	}, true
}
