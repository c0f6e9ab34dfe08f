package repository

import "context"

type InventoryRepository interface {
	// 在庫の現在値を設定（disponibleも再計算）
	SetStock(ctx context.Context, productID int64, newStock int64) error

	// 在庫が足りるときだけ減算。
	// 条件付きUPDATE 1文で行い、減らせなかったら false
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫が0になった商品をdisponible=falseに落とす
	MarkUnavailableIfOut(ctx context.Context, productID int64) error

	// 在庫戻し（運用上の明示的な再入荷のみ。キャンセルでは呼ばない）
	IncreaseStock(ctx context.Context, productID int64, qty int64) error
}
