package txmanager

import "errors"

var (
	// ErrBeginTx возвращается, когда не удалось открыть транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommit возвращается, когда не удалось закоммитить транзакцию
	ErrCommit = errors.New("txmanager: failed to commit transaction")

	// ErrRollback возвращается, когда откат транзакции завершился ошибкой
	ErrRollback = errors.New("txmanager: failed to rollback transaction")

	// ErrSavepoint возвращается, когда savepoint не удалось создать, откатить или освободить.
	// После этой ошибки транзакция непригодна для дальнейшей работы
	ErrSavepoint = errors.New("txmanager: savepoint failure")
)
