package ports

// Writer persists text files, skipping writes that would not change the file.
//
//go:generate mockgen -source=writer.go -destination=mocks/mock_writer.go -package=mocks
type Writer interface {
	// Write stores content at dir/name with exactly one trailing newline, creating dir
	// as needed. It reports whether the file was actually written.
	Write(dir, name, content string) (bool, error)
}
