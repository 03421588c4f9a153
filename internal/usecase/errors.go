package usecase

import (
	"errors"
	"fmt"
)

// 呼び出し側が回復できるエラー。プロセスを落とすものはない。
var (
	// 調整でトレイ数が負になる場合。バッチの状態は一切変更されない。
	ErrInsufficientStock = errors.New("insufficient stock")

	// 注文明細の品種が参照先バッチの品種と一致しない場合。
	ErrVarietyMismatch = errors.New("variety mismatch")
)

// OrderRejectedError は注文の巻き戻しが完了した後に、
// 最初に失敗した明細の原因を載せて返す。
type OrderRejectedError struct {
	OrderID string
	Cause   error
}

func (e *OrderRejectedError) Error() string {
	return fmt.Sprintf("order %s rejected: %v", e.OrderID, e.Cause)
}

func (e *OrderRejectedError) Unwrap() error {
	return e.Cause
}

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
