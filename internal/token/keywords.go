package token

var keywords = map[string]Kind{
	"true":  KwTrue,
	"false": KwFalse,
}

// LookupKeyword reports the keyword kind of ident. Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
