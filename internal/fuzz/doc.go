// Package fuzztests houses Go fuzz harnesses for the packet pipeline
// (source -> lexer -> parser -> comparator). They guard against panics and
// check the invariants of internal/testkit on arbitrary input.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер, парсер и
// компаратор в обеих стратегиях размещения.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
