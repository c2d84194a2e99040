package repository

import "errors"

var (
	// ErrNotFound 资源不存在或不属于请求方（两者对外不区分）
	ErrNotFound = errors.New("resource not found")
	// ErrConflict 乐观并发冲突，期望的消息数与实际不符
	ErrConflict = errors.New("concurrent modification conflict")
)
