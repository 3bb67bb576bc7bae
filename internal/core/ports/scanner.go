package ports

// Scanner enumerates icon files.
//
//go:generate mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type Scanner interface {
	// Scan returns every icon file under root at any depth, in directory-listing order.
	Scan(root string) ([]string, error)
}
