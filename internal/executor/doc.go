// Package executor содержит компонуемые исполнители, из которых собираются
// CLI-команды: цепочку фаз, шлюз валидации, обертки dry-run и интерактивного
// режима, транзакционные файловые операции с откатом, пакетную обработку,
// запуск подпроцессов и загрузку конфигурации.
//
// Все исполнители работают строго последовательно; единственная намеренная
// конкуренция: элементы внутри одного пакета RunBatch. Паника в переданной
// функции не выходит за границу исполнителя: она превращается в *core.Error
// с исходным значением в Cause.
package executor
