package rds

import (
	"database/sql"
	"fmt"

	"github.com/sepguard/sepguard-server/model"
)

// 自動評価スケジュールを取得する。存在しない場合はnilを返す。
// スケジュールは外部のバッチが進める時刻の器であり、ここでは読み書きのみを行う。
func FetchSchedule(
	db model.QueryExecutor,
) (*model.TestingSchedule, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM testing_schedule AS ts ORDER BY ts.id ASC LIMIT 1`,
		prefixColumns(model.TestingSchedule{}, "ts", "ts"),
	)

	var record *model.TestingSchedule

	if rows, e := db.Query(query); e != nil {
		return nil, e
	} else {
		safeRowsIterator(rows, func(rows *sql.Rows) {
			record = &model.TestingSchedule{}

			scanRows(db, rows, record, "ts")
		})

		return record, nil
	}
}
