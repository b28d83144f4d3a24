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

type DataService struct {
	*Service
	DB     *gorp.DbMap
	Influx lib.InfluxDBClient
}

type DataTxService struct {
	*Service
	DB     *gorp.Transaction
	Influx lib.InfluxDBClient
}

// 患者のセンササンプルを期間指定で古い順に取得する。
//
// 期間が指定されない場合、開始は直近24時間、終了は現在とする。
func (s *DataService) ListSamples(
	patientId int,
	sensorType *C.SensorType,
	begin *time.Time,
	end *time.Time,
) ([]*model.SensorSample, error) {
	if r, e := rds.InquirePatient(s.DB, patientId); e != nil {
		return nil, C.DB_OPERATION_ERROR(e)
	} else if r == nil {
		return nil, C.NewNotFoundError(
			"patient_not_found",
			"Patient is not found",
			map[string]interface{}{"id": patientId},
		)
	}

	if end == nil {
		now := time.Now()
		end = &now
	}
	if begin == nil {
		b := end.Add(-24 * time.Hour)
		begin = &b
	}

	if samples, e := influxdb.ListSamples(s.Influx, patientId, sensorType, *begin, *end); e != nil {
		return nil, C.INFLUXDB_OPERATION_ERROR(e)
	} else {
		return samples, nil
	}
}

// デバイスから届いたサンプル群を登録する。
//
// デバイスコードから患者とセンサ種別を解決して時系列ストアへ書き込み、
// あわせてデバイスの最終更新時刻と稼働状態を更新する。
func (s *DataTxService) RegisterSamples(
	deviceCode string,
	values []float64,
	timestamps []time.Time,
) error {
	if len(values) != len(timestamps) {
		return C.NewBadRequestError(
			"inconsistent_samples",
			"Values and timestamps must have the same length",
			map[string]interface{}{"values": len(values), "timestamps": len(timestamps)},
		)
	}

	var device *model.SensorDevice

	if r, e := rds.FetchSensorByCode(s.DB, deviceCode); e != nil {
		return C.DB_OPERATION_ERROR(e)
	} else if r == nil {
		return C.NewNotFoundError(
			"sensor_not_found",
			"Sensor device is not found",
			map[string]interface{}{"code": deviceCode},
		)
	} else {
		device = r
	}

	samples := make([]*model.SensorSample, 0, len(values))

	for i, v := range values {
		samples = append(samples, &model.SensorSample{
			PatientId:  device.PatientId,
			DeviceCode: device.Code,
			SensorType: device.SensorType,
			Value:      v,
			Timestamp:  timestamps[i],
		})
	}

	if errs := influxdb.InsertSamples(s.Influx, samples...); len(errs) > 0 {
		return C.INFLUXDB_OPERATION_ERROR(errs[0])
	}

	device.Status = string(C.SensorOnline)
	device.LastUpdated = time.Now()

	if _, e := s.DB.Update(device); e != nil {
		return C.DB_OPERATION_ERROR(e)
	}

	return nil
}
