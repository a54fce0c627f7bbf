package token

// Keywords maps reserved words of a grammar to their kinds.
type Keywords map[string]Kind

// Lookup возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func (kw Keywords) Lookup(ident string) (Kind, bool) {
	k, ok := kw[ident]
	return k, ok
}
