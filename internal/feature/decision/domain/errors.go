// Package domain はdecisionフィーチャーのドメインレベルのエラーを定義します。
package domain

import "errors"

// ErrCommodityRequired は品目名が指定されていないことを示します。
// これは呼び出し側の誤りであり、データ不足（空レスポンス）とは区別されます。
var ErrCommodityRequired = errors.New("commodity is required")
