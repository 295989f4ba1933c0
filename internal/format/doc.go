// Package format prints a parsed expression back as canonical source text:
// single spaces around binary operators and assignment, none after prefix
// operators, literals and names exactly as written.
//
// Назначение: команда fmt и проверка round-trip.
// Не делает: форматирование деревьев с синтаксическими ошибками.
// Зависимости: internal/ast, internal/syntax, internal/token.
package format
