package main

import (
	"flag"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gorp.v2"

	C "github.com/sepguard/sepguard-server/constant"
	"github.com/sepguard/sepguard-server/config"
	"github.com/sepguard/sepguard-server/lib"
	"github.com/sepguard/sepguard-server/model"
	"github.com/sepguard/sepguard-server/resource/influxdb"
)

// 開発用のテストデータを投入する。
// 患者・センサ・閾値設定・スケジュールをRDBへ、直近1時間分の
// センササンプルをInfluxDBへ書き込む。

type patientSeed struct {
	name string
	room string
	age  int
	hr   float64
	temp float64
}

var patientSeeds = []patientSeed{
	{"佐藤 花子", "301", 67, 78, 36.8},
	{"鈴木 一郎", "302", 74, 96, 38.4},
	{"田中 美咲", "305", 58, 112, 39.1},
	{"高橋 健太", "310", 45, 64, 36.2},
}

func insertPatients(tx *gorp.Transaction, now time.Time) ([]*model.Patient, error) {
	patients := []*model.Patient{}

	for i, seed := range patientSeeds {
		room := seed.room
		age := seed.age

		patient := &model.Patient{
			Code:          uuid.New().String(),
			Name:          seed.name,
			Room:          &room,
			Age:           &age,
			Status:        "active",
			AdmissionDate: now.AddDate(0, 0, -(i + 1)),
			CreatedAt:     now,
			ModifiedAt:    now,
		}

		if e := tx.Insert(patient); e != nil {
			return nil, e
		}

		patients = append(patients, patient)
	}

	return patients, nil
}

func insertSensors(tx *gorp.Transaction, patients []*model.Patient, now time.Time) ([]*model.SensorDevice, error) {
	sensors := []*model.SensorDevice{}

	for i, p := range patients {
		for _, t := range C.SensorTypes {
			status := C.SensorOnline

			// 一部のデバイスを欠損状態にする。
			if i == len(patients)-1 && t == C.SensorOxygen {
				status = C.SensorError
			}

			sensor := &model.SensorDevice{
				PatientId:   p.Id,
				Code:        uuid.New().String(),
				SensorType:  string(t),
				Status:      string(status),
				Meta:        model.JSON(`{"vendor":"medisense","firmware":"2.4.1"}`),
				LastUpdated: now,
			}

			if e := tx.Insert(sensor); e != nil {
				return nil, e
			}

			sensors = append(sensors, sensor)
		}
	}

	return sensors, nil
}

func insertSettings(tx *gorp.Transaction, now time.Time) error {
	policy := &model.AlertThresholdPolicy{
		CriticalThreshold:  C.DefaultCriticalThreshold,
		WarningThreshold:   C.DefaultWarningThreshold,
		AudioAlerts:        true,
		EmailNotifications: false,
		SmsAlerts:          false,
		ModifiedAt:         now,
	}

	if e := tx.Insert(policy); e != nil {
		return e
	}

	next := now.Add(C.DefaultTestingInterval)

	schedule := &model.TestingSchedule{
		IntervalMinutes: int(C.DefaultTestingInterval / time.Minute),
		LastRun:         &now,
		NextRun:         &next,
		ModifiedAt:      now,
	}

	return tx.Insert(schedule)
}

func insertSamples(sensors []*model.SensorDevice, now time.Time) error {
	samples := []*model.SensorSample{}

	for _, s := range sensors {
		if s.Status != string(C.SensorOnline) {
			continue
		}

		var base float64

		switch C.SensorType(s.SensorType) {
		case C.SensorHeartRate:
			base = 80
		case C.SensorTemperature:
			base = 36.8
		case C.SensorBloodPressure:
			base = 95
		case C.SensorOxygen:
			base = 97
		}

		// 1時間分を30秒間隔で、緩い正弦波にノイズを乗せて生成する。
		for sec := 0; sec < 3600; sec += 30 {
			at := now.Add(time.Duration(sec-3600) * time.Second)

			value := base + base*0.03*math.Sin(float64(sec)/600) + rand.Float64()*2 - 1

			samples = append(samples, &model.SensorSample{
				PatientId:  s.PatientId,
				DeviceCode: s.Code,
				SensorType: s.SensorType,
				Value:      math.Round(value*10) / 10,
				Timestamp:  at,
			})
		}
	}

	if errs := influxdb.InsertSamples(lib.GetInfluxDB(), samples...); len(errs) > 0 {
		return errs[0]
	}

	return nil
}

func main() {
	var seed int64
	flag.Int64Var(&seed, "seed", 1, "Random seed for sample generation")

	flag.Parse()

	rand.Seed(seed)

	config.SetupAll()

	now := time.Now().UTC().Truncate(time.Second)

	db := lib.GetDB(lib.WriteDBKey)

	tx, err := db.Begin()

	if err != nil {
		log.Fatal(err)
	}

	patients, err := insertPatients(tx, now)

	if err != nil {
		tx.Rollback()
		log.Fatal(err)
	}

	sensors, err := insertSensors(tx, patients, now)

	if err != nil {
		tx.Rollback()
		log.Fatal(err)
	}

	if e := insertSettings(tx, now); e != nil {
		tx.Rollback()
		log.Fatal(e)
	}

	if e := tx.Commit(); e != nil {
		log.Fatal(e)
	}

	if e := insertSamples(sensors, now); e != nil {
		log.Fatal(e)
	}

	log.Printf("Inserted %d patients and %d sensors\n", len(patients), len(sensors))
}
