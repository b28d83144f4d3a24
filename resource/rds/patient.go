package rds

import (
	"database/sql"
	"fmt"

	"github.com/sepguard/sepguard-server/model"
)

func InquirePatient(
	db model.QueryExecutor,
	id int,
) (*model.Patient, error) {
	if r, e := db.Get(model.Patient{}, id); e != nil {
		return nil, e
	} else if r == nil {
		return nil, nil
	} else {
		return r.(*model.Patient), nil
	}
}

// 公開コードから患者を取得する。
func FetchPatientByCode(
	db model.QueryExecutor,
	code string,
) (*model.Patient, error) {
	query := fmt.Sprintf(`SELECT %s FROM patient AS p WHERE p.code = $1`, prefixColumns(model.Patient{}, "p", "p"))

	if rows, e := db.Query(query, code); e != nil {
		return nil, e
	} else {
		var record *model.Patient

		safeRowsIterator(rows, func(rows *sql.Rows) {
			record = &model.Patient{}

			scanRows(db, rows, record, "p")
		})

		return record, nil
	}
}

// 患者一覧を、最新のバイタルと評価を添えて取得する。
// 最新の評価が新しい順にソートし、未評価の患者は末尾に回す。
func ListPatients(
	db model.QueryExecutor,
	limit int,
	offset int,
) ([]*model.PatientEntity, int64, error) {
	query := fmt.Sprintf(
		`SELECT
			%s, %s, %s
		FROM
			patient AS p
			LEFT JOIN LATERAL (
				SELECT * FROM vitals_reading AS v_
				WHERE v_.patient_id = p.id
				ORDER BY v_.measured_at DESC LIMIT 1
			) AS v ON true
			LEFT JOIN LATERAL (
				SELECT * FROM risk_assessment AS a_
				WHERE a_.patient_id = p.id
				ORDER BY a_.created_at DESC LIMIT 1
			) AS a ON true
		ORDER BY
			a.created_at DESC NULLS LAST, p.id ASC
		LIMIT $1 OFFSET $2`,
		prefixColumns(model.Patient{}, "p", "p"),
		prefixColumns(model.VitalsReading{}, "v", "v"),
		prefixColumns(model.RiskAssessment{}, "a", "a"),
	)

	records := []*model.PatientEntity{}

	if rows, e := db.Query(query, limit, offset); e != nil {
		return nil, 0, e
	} else {
		safeRowsIterator(rows, func(rows *sql.Rows) {
			patient := &model.Patient{}
			vitals := &model.VitalsReading{}
			assessment := &model.RiskAssessment{}

			scanRows(db, rows, patient, "p")
			scanRows(db, rows, vitals, "v")
			scanRows(db, rows, assessment, "a")

			entity := &model.PatientEntity{Patient: patient}

			if vitals.Id != 0 {
				entity.LatestVitals = vitals
			}
			if assessment.Id != 0 {
				entity.LatestAssessment = assessment
			}

			records = append(records, entity)
		})
	}

	if total, e := db.SelectInt(`SELECT COUNT(*) FROM patient`); e != nil {
		return nil, 0, e
	} else {
		return records, total, nil
	}
}

// 患者情報を最新のバイタル・評価付きで取得する。
func FetchPatientEntity(
	db model.QueryExecutor,
	id int,
) (*model.PatientEntity, error) {
	query := fmt.Sprintf(
		`SELECT
			%s, %s, %s
		FROM
			patient AS p
			LEFT JOIN LATERAL (
				SELECT * FROM vitals_reading AS v_
				WHERE v_.patient_id = p.id
				ORDER BY v_.measured_at DESC LIMIT 1
			) AS v ON true
			LEFT JOIN LATERAL (
				SELECT * FROM risk_assessment AS a_
				WHERE a_.patient_id = p.id
				ORDER BY a_.created_at DESC LIMIT 1
			) AS a ON true
		WHERE p.id = $1`,
		prefixColumns(model.Patient{}, "p", "p"),
		prefixColumns(model.VitalsReading{}, "v", "v"),
		prefixColumns(model.RiskAssessment{}, "a", "a"),
	)

	var entity *model.PatientEntity

	if rows, e := db.Query(query, id); e != nil {
		return nil, e
	} else {
		safeRowsIterator(rows, func(rows *sql.Rows) {
			patient := &model.Patient{}
			vitals := &model.VitalsReading{}
			assessment := &model.RiskAssessment{}

			scanRows(db, rows, patient, "p")
			scanRows(db, rows, vitals, "v")
			scanRows(db, rows, assessment, "a")

			entity = &model.PatientEntity{Patient: patient}

			if vitals.Id != 0 {
				entity.LatestVitals = vitals
			}
			if assessment.Id != 0 {
				entity.LatestAssessment = assessment
			}
		})

		return entity, nil
	}
}

// 入院中の患者数を取得する。
func CountActivePatients(
	db model.QueryExecutor,
) (int64, error) {
	return db.SelectInt(`SELECT COUNT(*) FROM patient WHERE status = 'active'`)
}

// 入院中の患者のID一覧を取得する。評価バッチの巡回対象となる。
func ListActivePatientIds(
	db model.QueryExecutor,
) ([]int, error) {
	ids := []int{}

	if rows, e := db.Query(`SELECT id FROM patient WHERE status = 'active' ORDER BY id ASC`); e != nil {
		return nil, e
	} else {
		safeRowsIterator(rows, func(rows *sql.Rows) {
			var id int

			rows.Scan(&id)

			ids = append(ids, id)
		})

		return ids, nil
	}
}

// 最新の評価が既定値以上の患者数を取得する。
func CountHighRiskPatients(
	db model.QueryExecutor,
	cutoff float64,
) (int64, error) {
	return db.SelectInt(
		`SELECT
			COUNT(*)
		FROM
			patient AS p
			INNER JOIN LATERAL (
				SELECT risk_score FROM risk_assessment AS a_
				WHERE a_.patient_id = p.id
				ORDER BY a_.created_at DESC LIMIT 1
			) AS a ON true
		WHERE
			a.risk_score >= $1`,
		cutoff,
	)
}
