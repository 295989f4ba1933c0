package driver

import (
	"silver/internal/diag"
	"silver/internal/lexer"
	"silver/internal/source"
	"silver/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes the file at path.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return tokenizeFile(fs, id, maxDiagnostics), nil
}

// TokenizeText lexes text held in a virtual file.
func TokenizeText(name, text string, maxDiagnostics int) *TokenizeResult {
	fs := source.NewFileSet()
	return tokenizeFile(fs, fs.AddVirtual(name, []byte(text)), maxDiagnostics)
}

func tokenizeFile(fs *source.FileSet, id source.FileID, maxDiagnostics int) *TokenizeResult {
	file := fs.Get(id)
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lx.Tokens(),
		Bag:     bag,
	}
}
