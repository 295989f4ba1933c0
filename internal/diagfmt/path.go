package diagfmt

import (
	"path/filepath"

	"silver/internal/source"
)

func displayPath(f *source.File, mode PathMode, base string) string {
	switch mode {
	case PathModeAbsolute:
		if f.Flags&source.FileVirtual != 0 {
			return f.Path
		}
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	case PathModeRelative:
		if base != "" {
			if rel, err := filepath.Rel(base, f.Path); err == nil {
				return filepath.ToSlash(rel)
			}
		}
		return f.Path
	default:
		return f.DisplayPath(base)
	}
}
