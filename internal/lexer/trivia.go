package lexer

// skipWhitespace drops ASCII and Unicode white space. Silver has no comments.
func (lx *Lexer) skipWhitespace() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isSpaceByte(b) {
				return
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isSpaceRune(r) {
			return
		}
		lx.bumpRune()
	}
}
