// Package domain はnegotiationフィーチャーのドメインレベルのエラーを定義します。
package domain

import "errors"

var (
	// ErrThreadNotFound は指定された交渉スレッドが存在しないことを示します。
	ErrThreadNotFound = errors.New("negotiation thread not found")

	// ErrThreadClosed はクローズ済みスレッドへの操作を示します。
	ErrThreadClosed = errors.New("negotiation thread is closed")

	// ErrNotParticipant はスレッドの当事者以外の操作を示します。
	ErrNotParticipant = errors.New("user is not a participant of this thread")

	// ErrOwnListing は農家が自分の出品に交渉を開始しようとしたことを示します。
	ErrOwnListing = errors.New("cannot negotiate on own listing")
)
