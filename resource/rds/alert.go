package rds

import (
	"database/sql"
	"fmt"

	"github.com/sepguard/sepguard-server/model"
)

func InquireAlert(
	db model.QueryExecutor,
	id int,
) (*model.Alert, error) {
	if r, e := db.Get(model.Alert{}, id); e != nil {
		return nil, e
	} else if r == nil {
		return nil, nil
	} else {
		return r.(*model.Alert), nil
	}
}

// 同一患者・同一区分の未確認自動アラートが無い場合に限りアラートを登録する。
// 重複判定と登録は部分一意インデックスにより単一の原子的操作として行われ、
// 並行する評価同士が同時に書き込んでも未確認アラートは1件に保たれる。
// 登録された場合はtrue、既存の未確認アラートにより抑止された場合はfalseを返す。
func InsertAlertUnlessOpen(
	db model.QueryExecutor,
	alert *model.Alert,
) (bool, error) {
	result, err := db.Exec(
		`INSERT INTO alert
			(patient_id, tier, message, is_manual, acknowledged, acknowledged_at, created_at, modified_at)
		VALUES
			($1, $2, $3, false, false, NULL, $4, $4)
		ON CONFLICT (patient_id, tier) WHERE NOT acknowledged AND NOT is_manual
		DO NOTHING`,
		alert.PatientId, alert.Tier, alert.Message, alert.CreatedAt,
	)

	if err != nil {
		return false, err
	}

	if n, e := result.RowsAffected(); e != nil {
		return false, e
	} else if n == 0 {
		return false, nil
	}

	// 採番されたIDを反映する。
	if r, e := FetchOpenAlert(db, alert.PatientId, alert.Tier); e != nil {
		return true, e
	} else if r != nil {
		*alert = *r
	}

	return true, nil
}

// 患者の未確認自動アラートを区分指定で取得する。
func FetchOpenAlert(
	db model.QueryExecutor,
	patientId int,
	tier string,
) (*model.Alert, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM alert AS al
		WHERE al.patient_id = $1 AND al.tier = $2 AND NOT al.acknowledged AND NOT al.is_manual`,
		prefixColumns(model.Alert{}, "al", "al"),
	)

	var record *model.Alert

	if rows, e := db.Query(query, patientId, tier); e != nil {
		return nil, e
	} else {
		safeRowsIterator(rows, func(rows *sql.Rows) {
			record = &model.Alert{}

			scanRows(db, rows, record, "al")
		})

		return record, nil
	}
}

// 未確認アラートを患者情報付きで新しい順に取得する。
// tierを指定した場合はその区分に絞り込む。
func ListOpenAlerts(
	db model.QueryExecutor,
	tier *string,
	limit int,
) ([]*model.AlertEntity, error) {
	ip := incrementalPlaceholder{0}

	q := andQuery().add("NOT al.acknowledged")

	if tier != nil {
		q.add(fmt.Sprintf("al.tier = $%d", ip.GetIndex()), *tier)
	}

	where, params := q.where()

	query := fmt.Sprintf(
		`SELECT
			%s, %s
		FROM
			alert AS al
			INNER JOIN patient AS p ON al.patient_id = p.id
		%s
		ORDER BY al.created_at DESC
		LIMIT $%d`,
		prefixColumns(model.Alert{}, "al", "al"),
		prefixColumns(model.Patient{}, "p", "p"),
		where, ip.GetIndex(),
	)

	records := []*model.AlertEntity{}

	if rows, e := db.Query(query, params.clone().add(limit).values...); e != nil {
		return nil, e
	} else {
		safeRowsIterator(rows, func(rows *sql.Rows) {
			alert := &model.Alert{}
			patient := &model.Patient{}

			scanRows(db, rows, alert, "al")
			scanRows(db, rows, patient, "p")

			records = append(records, &model.AlertEntity{Alert: alert, Patient: patient})
		})

		return records, nil
	}
}

// 患者のアラート履歴を新しい順に取得する。
func ListAlertsByPatient(
	db model.QueryExecutor,
	patientId int,
	limit int,
) ([]*model.Alert, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM alert AS al WHERE al.patient_id = $1 ORDER BY al.created_at DESC LIMIT $2`,
		prefixColumns(model.Alert{}, "al", "al"),
	)

	records := []*model.Alert{}

	if rows, e := db.Query(query, patientId, limit); e != nil {
		return nil, e
	} else {
		safeRowsIterator(rows, func(rows *sql.Rows) {
			alert := &model.Alert{}

			scanRows(db, rows, alert, "al")

			records = append(records, alert)
		})

		return records, nil
	}
}

// 未確認アラート数を取得する。tierを指定した場合はその区分のみ。
func CountOpenAlerts(
	db model.QueryExecutor,
	tier *string,
) (int64, error) {
	if tier != nil {
		return db.SelectInt(`SELECT COUNT(*) FROM alert WHERE NOT acknowledged AND tier = $1`, *tier)
	} else {
		return db.SelectInt(`SELECT COUNT(*) FROM alert WHERE NOT acknowledged`)
	}
}
