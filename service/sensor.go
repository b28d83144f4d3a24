package service

import (
	"time"

	"gopkg.in/gorp.v2"

	C "github.com/sepguard/sepguard-server/constant"
	"github.com/sepguard/sepguard-server/lib"
	"github.com/sepguard/sepguard-server/model"
	"github.com/sepguard/sepguard-server/resource/influxdb"
	"github.com/sepguard/sepguard-server/resource/rds"
)

type SensorService struct {
	*Service
	DB     *gorp.DbMap
	Influx lib.InfluxDBClient
}

type SensorTxService struct {
	*Service
	DB *gorp.Transaction
}

// センサ一台分の表示情報。テレメトリから導出した実効状態を持つ。
type SensorView struct {
	*model.SensorDevice
	Vendor         string        `json:"vendor"`
	EffectiveState C.SensorState `json:"effectiveState"`
	LastSampleAt   *time.Time    `json:"lastSampleAt"`
}

// 全センサを種別ごとに集計する。
//
// 稼働率が90%以上の種別はnormal、70%以上はwarning、それ未満はcriticalとする。
// 登録デバイスの無い種別はnormal扱い。
func (s *SensorService) AggregateByType() ([]*model.SensorTypeStatus, error) {
	devices, err := s.listWithStates()

	if err != nil {
		return nil, err
	}

	totals := map[C.SensorType]int{}
	onlines := map[C.SensorType]int{}

	for _, d := range devices {
		t := C.SensorType(d.SensorType)

		totals[t]++

		if d.EffectiveState == C.SensorOnline {
			onlines[t]++
		}
	}

	results := []*model.SensorTypeStatus{}

	for _, t := range C.SensorTypes {
		total := totals[t]
		online := onlines[t]

		class := "normal"

		if total > 0 {
			ratio := float64(online) / float64(total) * 100

			if ratio < 70 {
				class = "critical"
			} else if ratio < 90 {
				class = "warning"
			}
		}

		results = append(results, &model.SensorTypeStatus{
			SensorType:  t,
			Online:      online,
			Total:       total,
			StatusClass: class,
		})
	}

	return results, nil
}

// 全センサの表示情報を取得する。
//
// 登録上onlineのデバイスであっても、一定時間サンプルが届いていない場合は
// offlineとして扱う。ベンダ名は機器がメタ情報として申告した場合のみ埋まる。
func (s *SensorService) ListDevices() ([]*SensorView, error) {
	return s.listWithStates()
}

func (s *SensorService) listWithStates() ([]*SensorView, error) {
	var devices []*model.SensorDevice

	if rs, e := rds.ListSensorDevices(s.DB); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		devices = rs
	}

	silenceLimit := time.Now().Add(-C.SensorSilenceDuration)

	var lastSamples map[string]time.Time

	if m, e := influxdb.LastSampleTimes(s.Influx, silenceLimit); e != nil {
		return nil, C.INFLUXDB_OPERATION_ERROR(e)
	} else {
		lastSamples = m
	}

	results := []*SensorView{}

	for _, d := range devices {
		view := &SensorView{SensorDevice: d}

		// メタ情報はベンダ任意のJSONであり、構造を仮定せずに探る。
		meta, _ := lib.ParseJson(d.Meta)
		view.Vendor = meta.Get("vendor").String("")

		state := C.SensorState(d.Status)

		if last, be := lastSamples[d.Code]; be {
			view.LastSampleAt = &last
		} else if state == C.SensorOnline {
			state = C.SensorOffline
		}

		view.EffectiveState = state

		results = append(results, view)
	}

	return results, nil
}

// 自動評価スケジュールを取得する。未登録の場合は既定間隔のものを返す。
func (s *SensorService) FetchSchedule() (*model.TestingSchedule, error) {
	if r, e := rds.FetchSchedule(s.DB); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if r == nil {
		return &model.TestingSchedule{
			IntervalMinutes: int(C.DefaultTestingInterval / time.Minute),
		}, nil
	} else {
		return r, nil
	}
}

// 自動評価スケジュールの間隔を更新する。
//
// 更新時点を実行済みと見なし、last_runを現在、next_runを現在+間隔に設定する。
func (s *SensorTxService) UpdateSchedule(intervalMinutes int) (*model.TestingSchedule, error) {
	if intervalMinutes <= 0 {
		return nil, C.NewBadRequestError(
			"invalid_interval",
			"Testing interval must be a positive number of minutes",
			map[string]interface{}{"intervalMinutes": intervalMinutes},
		)
	}

	var schedule *model.TestingSchedule

	if r, e := rds.FetchSchedule(s.DB); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else {
		schedule = r
	}

	now := time.Now()
	next := now.Add(time.Duration(intervalMinutes) * time.Minute)

	if schedule == nil {
		schedule = &model.TestingSchedule{
			IntervalMinutes: intervalMinutes,
			LastRun:         &now,
			NextRun:         &next,
			ModifiedAt:      now,
		}

		if e := s.DB.Insert(schedule); e != nil {
			return nil, C.DB_OPERATION_ERROR(e)
		}
	} else {
		schedule.IntervalMinutes = intervalMinutes
		schedule.LastRun = &now
		schedule.NextRun = &next
		schedule.ModifiedAt = now

		if _, e := s.DB.Update(schedule); e != nil {
			return nil, C.DB_OPERATION_ERROR(e)
		}
	}

	return schedule, nil
}

// バッチ実行の完了を記録し、次回実行時刻を進める。
func (s *SensorTxService) AdvanceSchedule(ranAt time.Time) (*model.TestingSchedule, error) {
	var schedule *model.TestingSchedule

	if r, e := rds.FetchSchedule(s.DB); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if r == nil {
		schedule = &model.TestingSchedule{
			IntervalMinutes: int(C.DefaultTestingInterval / time.Minute),
		}

		next := ranAt.Add(C.DefaultTestingInterval)
		schedule.LastRun = &ranAt
		schedule.NextRun = &next
		schedule.ModifiedAt = ranAt

		if e := s.DB.Insert(schedule); e != nil {
			return nil, C.DB_OPERATION_ERROR(e)
		}

		return schedule, nil
	} else {
		schedule = r
	}

	next := ranAt.Add(time.Duration(schedule.IntervalMinutes) * time.Minute)

	schedule.LastRun = &ranAt
	schedule.NextRun = &next
	schedule.ModifiedAt = ranAt

	if _, e := s.DB.Update(schedule); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	}

	return schedule, nil
}
