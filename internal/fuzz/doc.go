// Package fuzztests houses Go fuzz harnesses for the lexer engine, the
// bundled grammars and the symbol interner. The goal is to guard against
// panics, hangs and broken stream invariants on arbitrary inputs.
//
// Назначение: прогонять произвольные байты через FileSet, лексер и интернер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/grammar,
// internal/symbol, internal/testkit.
package fuzztests
