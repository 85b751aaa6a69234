// Package domain はordersフィーチャーのドメインレベルのエラーを定義します。
package domain

import "errors"

var (
	// ErrOrderNotFound は指定された注文が存在しないことを示します。
	ErrOrderNotFound = errors.New("order not found")

	// ErrListingUnavailable は出品が公開中でないか在庫不足であることを示します。
	ErrListingUnavailable = errors.New("listing is not available for ordering")

	// ErrInvalidTransition は許可されていない注文ステータス遷移を示します。
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrNotParticipant は注文の当事者（購入者・農家）以外の操作を示します。
	ErrNotParticipant = errors.New("user is not a participant of this order")
)
