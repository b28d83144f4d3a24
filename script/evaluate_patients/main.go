package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sepguard/sepguard-server/config"
	"github.com/sepguard/sepguard-server/lib"
	"github.com/sepguard/sepguard-server/model"
	"github.com/sepguard/sepguard-server/resource/rds"
	S "github.com/sepguard/sepguard-server/service"
)

// 入院中の全患者について、最新のバイタル記録から自動評価を実行する。
// cron等から定期的に起動されることを想定し、スケジュールの次回実行時刻に
// 達していない場合は何もせず終了する。
func main() {
	// REVIEW 環境固定。
	os.Setenv("SERVER_ENV", "prod")

	// ログファイル準備
	var rootDir string

	if self, e := os.Executable(); e != nil {
		log.Fatal(e)
	} else {
		rootDir = filepath.Dir(self)
	}

	if e := os.Chdir(rootDir); e != nil {
		log.Fatal(e)
	}

	logDir := filepath.Join(rootDir, "logs")

	if e := os.MkdirAll(logDir, 0777); e != nil {
		log.Fatal(e)
	}

	today := time.Now()

	logPath := filepath.Join(logDir, fmt.Sprintf("evaluate-patients-%04d%02d%02d.log", today.Year(), today.Month(), today.Day()))

	if f, e := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666); e != nil {
		log.Fatal(e)
	} else {
		defer f.Close()
		log.SetOutput(f)
	}

	// 設定
	config.SetupAll()

	evaluationConfig := config.EvaluationConfig()

	// コマンドライン引数
	var force bool
	flag.BoolVar(&force, "force", evaluationConfig.Force, "Run evaluation regardless of the schedule")

	flag.Parse()

	now := time.Now()

	readDB := lib.GetDB(lib.ReadDBKey)

	// スケジュール確認。
	if !force {
		if schedule, e := rds.FetchSchedule(readDB); e != nil {
			log.Fatal(e)
		} else if schedule != nil && schedule.NextRun != nil && schedule.NextRun.After(now) {
			log.Printf("Next run is scheduled at %v, skipped.\n", *schedule.NextRun)
			os.Exit(0)
		}
	}

	var patientIds []int

	if ids, e := rds.ListActivePatientIds(readDB); e != nil {
		log.Fatal(e)
	} else {
		patientIds = ids
	}

	if len(patientIds) == 0 {
		log.Printf("No active patients are found.\n")
		os.Exit(0)
	}

	log.Printf("Evaluate %d patients\n", len(patientIds))

	logger := logrus.WithField("job", "evaluate_patients")

	workers := evaluationConfig.Workers
	if workers <= 0 {
		workers = 4
	}

	idChannel := make(chan int)
	errorChannel := make(chan error)
	resultChannel := make(chan *model.EvaluationResult)

	for i := 0; i < workers; i++ {
		go func() {
			for patientId := range idChannel {
				result, err := evaluateOne(logger, patientId)

				if err != nil {
					errorChannel <- err
				} else {
					resultChannel <- result
				}
			}
		}()
	}

	go func() {
		for _, id := range patientIds {
			idChannel <- id
		}
		close(idChannel)
	}()

	succeeded := 0
	failed := 0

	for i := 0; i < len(patientIds); i++ {
		select {
		case r := (<-resultChannel):
			log.Printf("Success patient #%d: score = %.1f, tier = %s\n", r.Assessment.PatientId, r.Assessment.RiskScore, r.Tier)
			succeeded++
		case e := (<-errorChannel):
			log.Printf("Error: %v\n", e)
			failed++
		}
	}

	log.Printf("Evaluation finished: %d succeeded, %d failed\n", succeeded, failed)

	// スケジュールを進める。
	db := lib.GetDB(lib.WriteDBKey)

	if tx, e := db.Begin(); e != nil {
		log.Fatal(e)
	} else {
		service := &S.SensorTxService{
			Service: &S.Service{Log: logger},
			DB:      tx,
		}

		if _, e := service.AdvanceSchedule(now); e != nil {
			tx.Rollback()
			log.Fatal(e)
		} else {
			tx.Commit()
		}
	}
}

// 患者一人分の評価を独立したトランザクションで実行する。
func evaluateOne(logger *logrus.Entry, patientId int) (*model.EvaluationResult, error) {
	db := lib.GetDB(lib.WriteDBKey)

	tx, err := db.Begin()

	if err != nil {
		return nil, err
	}

	service := &S.AssessmentTxService{
		Service: &S.Service{Log: logger},
		DB:      tx,
	}

	result, err := service.EvaluateLatest(patientId, true)

	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("patient #%d: %w", patientId, err)
	}

	if e := tx.Commit(); e != nil {
		return nil, fmt.Errorf("patient #%d: %w", patientId, e)
	}

	return result, nil
}
