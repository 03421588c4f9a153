package repository

import "errors"

// 対象が見つからないときに各Repositoryが返す共通のエラー。
var ErrNotFound = errors.New("not found")
