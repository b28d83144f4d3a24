package influxdb

import (
	"fmt"
	"time"

	C "github.com/sepguard/sepguard-server/constant"
	"github.com/sepguard/sepguard-server/lib"
	"github.com/sepguard/sepguard-server/model"
)

const bucket = "sepguard"

// 患者のセンササンプルを古い順に取得する。
// sensorTypeを指定した場合はその種別のみに絞り込む。
func ListSamples(
	influx lib.InfluxDBClient,
	patientId int,
	sensorType *C.SensorType,
	begin time.Time,
	end time.Time,
) ([]*model.SensorSample, error) {
	filter := fmt.Sprintf(`r._measurement == "sensor_sample" and r.patient_id == "%d"`, patientId)

	if sensorType != nil {
		filter = fmt.Sprintf(`%s and r.sensor_type == "%s"`, filter, *sensorType)
	}

	query := fmt.Sprintf(
		`from(bucket:"%s")
			|> range(start:%d, stop:%d)
			|> filter(fn: (r) => %s)
			|> group()
			|> sort(columns:["_time"])`,
		bucket, begin.Unix(), end.Unix(), filter,
	)

	results := []*model.SensorSample{}

	if e := influx.Select(query, lib.PointConsumer(func(p lib.Point, field string) error {
		if m, ok := p.(*model.SensorSample); !ok {
			return fmt.Errorf("Invalid measurement type for sensor sample: %s", p.Measurement())
		} else {
			results = append(results, m)
			return nil
		}
	})); e != nil {
		return nil, e
	}

	return results, nil
}

// デバイスごとの最終サンプル時刻を取得する。
// 指定期間内にサンプルの無いデバイスは結果に含まれない。
func LastSampleTimes(
	influx lib.InfluxDBClient,
	since time.Time,
) (map[string]time.Time, error) {
	query := fmt.Sprintf(
		`from(bucket:"%s")
			|> range(start:%d)
			|> filter(fn: (r) => r._measurement == "sensor_sample")
			|> group(columns:["device_code"])
			|> last()`,
		bucket, since.Unix(),
	)

	results := map[string]time.Time{}

	if e := influx.Select(query, func(i int, field string, r *lib.PointRecord) error {
		code := r.Tags["device_code"]

		if last, be := results[code]; !be || r.Timestamp.After(last) {
			results[code] = r.Timestamp
		}

		return nil
	}); e != nil {
		return nil, e
	}

	return results, nil
}

// センササンプルを登録する。
func InsertSamples(
	influx lib.InfluxDBClient,
	samples ...*model.SensorSample,
) []error {
	points := make([]lib.Point, 0, len(samples))

	for _, s := range samples {
		points = append(points, s)
	}

	return influx.Insert(bucket, points...)
}
