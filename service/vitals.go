package service

import (
	"time"

	"gopkg.in/gorp.v2"

	C "github.com/sepguard/sepguard-server/constant"
	"github.com/sepguard/sepguard-server/model"
	"github.com/sepguard/sepguard-server/resource/rds"
)

type VitalsService struct {
	*Service
	DB *gorp.DbMap
}

// 入力されたバイタル値。全項目が任意だが、最低一つは必要。
type VitalsInput struct {
	HeartRate        *float64
	Temperature      *float64
	SystolicBp       *float64
	DiastolicBp      *float64
	OxygenSaturation *float64
	RespiratoryRate  *float64
	MeasuredAt       *time.Time
}

// 入力値を検証し、派生値を計算した記録を生成する。未保存のままで返す。
//
// 検証は以下の順に行われ、最初の違反がエラーとなる。
//
// - 少なくとも一つのバイタル値が入力されていること。
// - 各値が許容範囲に収まっていること。
// - 収縮期血圧と拡張期血圧が揃う場合、前者が後者より大きいこと。
//
// 平均動脈圧は両血圧が揃う場合のみ計算され、丸めずにそのまま保持される。
func NormalizeReading(patientId int, input *VitalsInput) (*model.VitalsReading, error) {
	values := map[C.VitalField]*float64{
		C.VitalHeartRate:        input.HeartRate,
		C.VitalTemperature:      input.Temperature,
		C.VitalSystolicBP:       input.SystolicBp,
		C.VitalDiastolicBP:      input.DiastolicBp,
		C.VitalOxygenSaturation: input.OxygenSaturation,
		C.VitalRespiratoryRate:  input.RespiratoryRate,
	}

	provided := 0

	for _, v := range values {
		if v != nil {
			provided++
		}
	}

	if provided == 0 {
		return nil, C.NO_VITALS_PROVIDED
	}

	// マップの列挙順は不定なため、フィールド定義順に検証する。
	for _, f := range []C.VitalField{
		C.VitalHeartRate,
		C.VitalTemperature,
		C.VitalSystolicBP,
		C.VitalDiastolicBP,
		C.VitalOxygenSaturation,
		C.VitalRespiratoryRate,
	} {
		if v := values[f]; v != nil {
			r := C.VitalRanges[f]

			if *v < r.Min || *v > r.Max {
				return nil, C.OUT_OF_RANGE(f, *v)
			}
		}
	}

	reading := &model.VitalsReading{
		PatientId:        patientId,
		HeartRate:        input.HeartRate,
		Temperature:      input.Temperature,
		SystolicBp:       input.SystolicBp,
		DiastolicBp:      input.DiastolicBp,
		OxygenSaturation: input.OxygenSaturation,
		RespiratoryRate:  input.RespiratoryRate,
	}

	if input.SystolicBp != nil && input.DiastolicBp != nil {
		sys, dia := *input.SystolicBp, *input.DiastolicBp

		if sys <= dia {
			return nil, C.INVALID_BLOOD_PRESSURE
		}

		mean := dia + (sys-dia)/3
		reading.MeanArterialPressure = &mean
	}

	if input.MeasuredAt != nil {
		reading.MeasuredAt = *input.MeasuredAt
	} else {
		reading.MeasuredAt = time.Now()
	}

	return reading, nil
}

// 患者のバイタル記録を期間指定で古い順に取得する。
func (s *VitalsService) ListVitals(
	patientId int,
	begin *time.Time,
	end *time.Time,
) ([]*model.VitalsReading, error) {
	if _, e := s.fetchPatient(patientId); e != nil {
		return nil, e
	}

	if records, e := rds.ListVitalsInRange(s.DB, patientId, begin, end); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		return records, nil
	}
}

func (s *VitalsService) fetchPatient(patientId int) (*model.Patient, error) {
	if r, e := rds.InquirePatient(s.DB, patientId); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if r == nil {
		return nil, C.NewNotFoundError(
			"patient_not_found",
			"Patient is not found",
			map[string]interface{}{"id": patientId},
		)
	} else {
		return r, nil
	}
}
