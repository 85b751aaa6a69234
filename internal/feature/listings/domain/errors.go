// Package domain はlistingsフィーチャーのドメインレベルのエラーを定義します。
package domain

import "errors"

var (
	// ErrListingNotFound は指定された出品が存在しないことを示します。
	ErrListingNotFound = errors.New("listing not found")

	// ErrNotOwner は出品の所有者以外が変更を試みたことを示します。
	ErrNotOwner = errors.New("listing is owned by another farmer")

	// ErrInvalidStatus は許可されていないステータス遷移を示します。
	ErrInvalidStatus = errors.New("invalid listing status")
)
