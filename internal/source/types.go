package source

import "strconv"

// FileID indexes FileSet.files; IDs are never reused within one set.
type FileID uint32

// FileFlags records how a file entered the set.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // stdin, тесты, делители
	FileHadBOM                               // BOM срезан при загрузке
	FileNormalizedCRLF                       // \r\n заменены на \n
)

// Has reports whether every bit of flag is set.
func (f FileFlags) Has(flag FileFlags) bool {
	return f&flag == flag
}

// File is one packet transcript held in memory.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte // sha256 of Content, ключ кэша ответов
	Flags   FileFlags
}

// LineCol is a 1-based position; Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}

// String renders "line:col".
func (lc LineCol) String() string {
	return strconv.FormatUint(uint64(lc.Line), 10) + ":" + strconv.FormatUint(uint64(lc.Col), 10)
}
