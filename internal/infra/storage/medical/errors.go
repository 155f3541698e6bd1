package medical

import "errors"

var (
	// ErrRecordNotFound возвращается, когда анкета не найдена
	ErrRecordNotFound = errors.New("medical.repository: record not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("medical.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("medical.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("medical.repository: failed to scan row")
)
