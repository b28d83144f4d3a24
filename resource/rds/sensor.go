package rds

import (
	"database/sql"
	"fmt"

	"github.com/sepguard/sepguard-server/model"
)

// デバイスコードからセンサを取得する。
func FetchSensorByCode(
	db model.QueryExecutor,
	code string,
) (*model.SensorDevice, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM sensor_device AS s WHERE s.code = $1`,
		prefixColumns(model.SensorDevice{}, "s", "s"),
	)

	var record *model.SensorDevice

	if rows, e := db.Query(query, code); e != nil {
		return nil, e
	} else {
		safeRowsIterator(rows, func(rows *sql.Rows) {
			record = &model.SensorDevice{}

			scanRows(db, rows, record, "s")
		})

		return record, nil
	}
}

// 全センサを種別・ID順に取得する。
func ListSensorDevices(
	db model.QueryExecutor,
) ([]*model.SensorDevice, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM sensor_device AS s ORDER BY s.sensor_type ASC, s.id ASC`,
		prefixColumns(model.SensorDevice{}, "s", "s"),
	)

	records := []*model.SensorDevice{}

	if rows, e := db.Query(query); e != nil {
		return nil, e
	} else {
		safeRowsIterator(rows, func(rows *sql.Rows) {
			sensor := &model.SensorDevice{}

			scanRows(db, rows, sensor, "s")

			records = append(records, sensor)
		})

		return records, nil
	}
}

