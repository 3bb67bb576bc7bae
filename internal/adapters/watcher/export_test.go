package watcher

// Qualifies exposes the event filter for tests.
func Qualifies(roots []string, path string, isDir bool) bool {
	w := &Watcher{roots: roots}
	return w.qualifies(path, isDir)
}
