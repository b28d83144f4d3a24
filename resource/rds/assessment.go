package rds

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sepguard/sepguard-server/model"
)

// 評価と個別予測を登録する。予測のSeqとAssessmentIdはここで振り直す。
func InsertAssessment(
	db model.QueryExecutor,
	assessment *model.RiskAssessment,
	predictions []*model.ModelPrediction,
) error {
	if e := db.Insert(assessment); e != nil {
		return e
	}

	for i, p := range predictions {
		p.AssessmentId = assessment.Id
		p.Seq = i

		if e := db.Insert(p); e != nil {
			return e
		}
	}

	return nil
}

// 評価を個別予測付きで取得する。予測は登録順。
func FetchAssessment(
	db model.QueryExecutor,
	id int,
) (*model.RiskAssessmentEntity, error) {
	query := fmt.Sprintf(
		`SELECT
			%s, %s
		FROM
			risk_assessment AS a
			LEFT JOIN model_prediction AS mp ON a.id = mp.assessment_id
		WHERE
			a.id = $1
		ORDER BY mp.seq ASC`,
		prefixColumns(model.RiskAssessment{}, "a", "a"),
		prefixColumns(model.ModelPrediction{}, "mp", "mp"),
	)

	if rows, e := db.Query(query, id); e != nil {
		return nil, e
	} else {
		var entity *model.RiskAssessmentEntity

		safeRowsIterator(rows, func(rows *sql.Rows) {
			assessment := &model.RiskAssessment{}
			prediction := &model.ModelPrediction{}

			scanRows(db, rows, assessment, "a")
			scanRows(db, rows, prediction, "mp")

			if entity == nil {
				entity = &model.RiskAssessmentEntity{RiskAssessment: assessment, Predictions: []*model.ModelPrediction{}}
			}

			if prediction.Id != 0 {
				entity.Predictions = append(entity.Predictions, prediction)
			}
		})

		return entity, nil
	}
}

// 患者の評価履歴を新しい順に取得する。
func ListAssessments(
	db model.QueryExecutor,
	patientId int,
	limit int,
) ([]*model.RiskAssessmentEntity, error) {
	query := fmt.Sprintf(
		`SELECT
			%s, %s
		FROM
			(
				SELECT * FROM risk_assessment AS a_
				WHERE a_.patient_id = $1
				ORDER BY a_.created_at DESC LIMIT $2
			) AS a
			LEFT JOIN model_prediction AS mp ON a.id = mp.assessment_id
		ORDER BY a.created_at DESC, mp.seq ASC`,
		prefixColumns(model.RiskAssessment{}, "a", "a"),
		prefixColumns(model.ModelPrediction{}, "mp", "mp"),
	)

	entities := []*model.RiskAssessmentEntity{}

	if rows, e := db.Query(query, patientId, limit); e != nil {
		return nil, e
	} else {
		var current *model.RiskAssessmentEntity

		safeRowsIterator(rows, func(rows *sql.Rows) {
			assessment := &model.RiskAssessment{}
			prediction := &model.ModelPrediction{}

			scanRows(db, rows, assessment, "a")
			scanRows(db, rows, prediction, "mp")

			if current == nil || current.Id != assessment.Id {
				current = &model.RiskAssessmentEntity{RiskAssessment: assessment, Predictions: []*model.ModelPrediction{}}
				entities = append(entities, current)
			}

			if prediction.Id != 0 {
				current.Predictions = append(current.Predictions, prediction)
			}
		})

		return entities, nil
	}
}

// 患者の最新の評価を取得する。
func FetchLatestAssessment(
	db model.QueryExecutor,
	patientId int,
) (*model.RiskAssessmentEntity, error) {
	if rs, e := ListAssessments(db, patientId, 1); e != nil {
		return nil, e
	} else if len(rs) == 0 {
		return nil, nil
	} else {
		return rs[0], nil
	}
}

// 指定日の評価件数を取得する。
func CountAssessmentsSince(
	db model.QueryExecutor,
	since time.Time,
) (int64, error) {
	return db.SelectInt(`SELECT COUNT(*) FROM risk_assessment WHERE created_at >= $1`, since)
}
