package service

import (
	"time"

	"github.com/google/uuid"
	"gopkg.in/gorp.v2"

	C "github.com/sepguard/sepguard-server/constant"
	"github.com/sepguard/sepguard-server/model"
	"github.com/sepguard/sepguard-server/resource/rds"
)

type PatientService struct {
	*Service
	DB *gorp.DbMap
}

type PatientTxService struct {
	*Service
	DB *gorp.Transaction
}

// 患者の登録・更新内容。
type PatientInput struct {
	Name          string
	Room          *string
	Age           *int
	AdmissionDate *time.Time
}

// 患者一覧を最新のバイタル・評価付きで取得する。返り値の後者は総件数。
func (s *PatientService) List(limit int, offset int) ([]*model.PatientEntity, int64, error) {
	if limit <= 0 {
		limit = 50
	}

	if rs, total, e := rds.ListPatients(s.DB, limit, offset); e != nil {
		return nil, 0, C.DB_OPERATION_ERROR(e)
	} else {
		return rs, total, nil
	}
}

// 患者を最新のバイタル・評価付きで取得する。
func (s *PatientService) Fetch(id int) (*model.PatientEntity, error) {
	if r, e := rds.FetchPatientEntity(s.DB, id); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if r == nil {
		return nil, C.NewNotFoundError(
			"patient_not_found",
			"Patient is not found",
			map[string]interface{}{"id": id},
		)
	} else {
		return r, nil
	}
}

// 公開コードから患者を取得する。
func (s *PatientService) FetchByCode(code string) (*model.Patient, error) {
	if r, e := rds.FetchPatientByCode(s.DB, code); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if r == nil {
		return nil, C.UNKNOWN_PATIENT(code)
	} else {
		return r, nil
	}
}

// 患者を登録する。公開コードは自動採番される。
func (s *PatientTxService) Create(input *PatientInput) (*model.Patient, error) {
	now := time.Now()

	admission := now
	if input.AdmissionDate != nil {
		admission = *input.AdmissionDate
	}

	patient := &model.Patient{
		Code:          uuid.New().String(),
		Name:          input.Name,
		Room:          input.Room,
		Age:           input.Age,
		Status:        "active",
		AdmissionDate: admission,
		CreatedAt:     now,
		ModifiedAt:    now,
	}

	if e := s.DB.Insert(patient); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	}

	return patient, nil
}

// 患者情報を更新する。
func (s *PatientTxService) Update(id int, input *PatientInput) (*model.Patient, error) {
	var patient *model.Patient

	if r, e := rds.InquirePatient(s.DB, id); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if r == nil {
		return nil, C.NewNotFoundError(
			"patient_not_found",
			"Patient is not found",
			map[string]interface{}{"id": id},
		)
	} else {
		patient = r
	}

	patient.Name = input.Name
	patient.Room = input.Room
	patient.Age = input.Age
	if input.AdmissionDate != nil {
		patient.AdmissionDate = *input.AdmissionDate
	}
	patient.ModifiedAt = time.Now()

	if _, e := s.DB.Update(patient); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	}

	return patient, nil
}

// 患者を退院済みにする。記録は削除されず、一覧や評価バッチの対象から外れる。
func (s *PatientTxService) Discharge(id int) (*model.Patient, error) {
	var patient *model.Patient

	if r, e := rds.InquirePatient(s.DB, id); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if r == nil {
		return nil, C.NewNotFoundError(
			"patient_not_found",
			"Patient is not found",
			map[string]interface{}{"id": id},
		)
	} else {
		patient = r
	}

	patient.Status = "discharged"
	patient.ModifiedAt = time.Now()

	if _, e := s.DB.Update(patient); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	}

	return patient, nil
}
