package rds

import (
	"database/sql"
	"fmt"

	"github.com/sepguard/sepguard-server/model"
)

// 現行のアラート閾値設定を取得する。存在しない場合はnilを返す。
// 評価処理は必ず開始時にこれを読み、取得した値を分類まで引き回す。
func FetchCurrentPolicy(
	db model.QueryExecutor,
) (*model.AlertThresholdPolicy, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM alert_threshold_policy AS tp ORDER BY tp.id ASC LIMIT 1`,
		prefixColumns(model.AlertThresholdPolicy{}, "tp", "tp"),
	)

	var record *model.AlertThresholdPolicy

	if rows, e := db.Query(query); e != nil {
		return nil, e
	} else {
		safeRowsIterator(rows, func(rows *sql.Rows) {
			record = &model.AlertThresholdPolicy{}

			scanRows(db, rows, record, "tp")
		})

		return record, nil
	}
}
