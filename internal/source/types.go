package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual marks text that did not come from disk (REPL line, -e argument, test).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is the immutable source text of one compilation unit.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human readable position.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, bytes
}

// Text returns the file content as a string.
func (f *File) Text() string {
	return string(f.Content)
}

// Slice returns the text covered by sp, clamped to the file bounds.
func (f *File) Slice(sp Span) string {
	n := uint32(len(f.Content)) // #nosec G115 -- bounded by FileSet.Add
	start, end := sp.Start, sp.End
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	if end < start {
		return ""
	}
	return string(f.Content[start:end])
}
