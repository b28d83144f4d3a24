package rds

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sepguard/sepguard-server/model"
)

func InquireVitalsReading(
	db model.QueryExecutor,
	id int,
) (*model.VitalsReading, error) {
	if r, e := db.Get(model.VitalsReading{}, id); e != nil {
		return nil, e
	} else if r == nil {
		return nil, nil
	} else {
		return r.(*model.VitalsReading), nil
	}
}

// 患者のバイタル記録を期間で絞り込み、古い順に取得する。
// チャート表示を想定しているため昇順で返す。
func ListVitalsInRange(
	db model.QueryExecutor,
	patientId int,
	begin *time.Time,
	end *time.Time,
) ([]*model.VitalsReading, error) {
	ip := incrementalPlaceholder{0}

	q := andQuery().add(fmt.Sprintf("v.patient_id = $%d", ip.GetIndex()), patientId)

	if begin != nil {
		q.add(fmt.Sprintf("v.measured_at >= $%d", ip.GetIndex()), *begin)
	}
	if end != nil {
		q.add(fmt.Sprintf("v.measured_at <= $%d", ip.GetIndex()), *end)
	}

	where, params := q.where()

	query := fmt.Sprintf(
		`SELECT %s FROM vitals_reading AS v %s ORDER BY v.measured_at ASC`,
		prefixColumns(model.VitalsReading{}, "v", "v"),
		where,
	)

	records := []*model.VitalsReading{}

	if rows, e := db.Query(query, params.values...); e != nil {
		return nil, e
	} else {
		safeRowsIterator(rows, func(rows *sql.Rows) {
			reading := &model.VitalsReading{}

			scanRows(db, rows, reading, "v")

			records = append(records, reading)
		})

		return records, nil
	}
}

// 患者の最新バイタル記録を取得する。
func FetchLatestVitals(
	db model.QueryExecutor,
	patientId int,
) (*model.VitalsReading, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM vitals_reading AS v WHERE v.patient_id = $1 ORDER BY v.measured_at DESC LIMIT 1`,
		prefixColumns(model.VitalsReading{}, "v", "v"),
	)

	var record *model.VitalsReading

	if rows, e := db.Query(query, patientId); e != nil {
		return nil, e
	} else {
		safeRowsIterator(rows, func(rows *sql.Rows) {
			record = &model.VitalsReading{}

			scanRows(db, rows, record, "v")
		})

		return record, nil
	}
}
