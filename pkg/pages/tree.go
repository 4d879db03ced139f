package pages

import "fmt"

// Rebase moves path from below oldPrefix to below newPrefix.
// Paths outside oldPrefix are returned unchanged.
func Rebase(path, oldPrefix, newPrefix string) string {
	switch {
	case path == oldPrefix:
		return newPrefix
	case !IsDescendant(path, oldPrefix):
		return path
	case oldPrefix == "":
		return newPrefix + "/" + path
	case newPrefix == "":
		return path[len(oldPrefix)+1:]
	default:
		return newPrefix + path[len(oldPrefix):]
	}
}

// CheckMove validates renaming a page from oldPath to newPath.
func CheckMove(oldPath, newPath string) error {
	if err := ValidatePath(newPath); err != nil {
		return err
	}
	if oldPath == newPath {
		return nil
	}
	if oldPath == "" || newPath == "" {
		return fmt.Errorf("%w: the root page cannot be moved", ErrInvalidPath)
	}
	if IsDescendant(newPath, oldPath) {
		return fmt.Errorf("%w: cannot move %q below itself", ErrInvalidPath, oldPath)
	}
	return nil
}
