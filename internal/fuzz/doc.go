// Package fuzztests houses Go fuzz harnesses for the Silver pipeline
// (source -> lexer -> parser -> binder -> vm). They guard against panics,
// hangs and broken spans on arbitrary input.
//
// Назначение: прогонять произвольные байты через весь конвейер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/syntax,
// internal/driver, internal/format, internal/testkit.
package fuzztests
