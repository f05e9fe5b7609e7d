package port

type FileStore interface {
	// Exists reports whether anything exists at path.
	Exists(path string) (bool, error)
	// DirExists reports whether path is an existing directory.
	DirExists(path string) bool
	// Copy copies src to dst, keeping the permission bits and modification time of src.
	Copy(src, dst string) error
	// Move renames src over dst, replacing it.
	Move(src, dst string) error
	// Remove deletes path and logs the outcome.
	Remove(path string)
}
