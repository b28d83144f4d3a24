package model

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sepguard/sepguard-server/lib"
)

// ベッドサイドセンサからの連続サンプル。InfluxDBに格納される。
type SensorSample struct {
	PatientId  int
	DeviceCode string
	SensorType string
	Value      float64
	Timestamp  time.Time
}

func (p *SensorSample) Measurement() string {
	return "sensor_sample"
}

func (p *SensorSample) FromRecord(r *lib.PointRecord) error {
	if r.Field != "value" {
		return fmt.Errorf("Unexpected field '%s' for sensor_sample", r.Field)
	}

	if v, e := strconv.Atoi(r.Tags["patient_id"]); e != nil {
		return e
	} else {
		p.PatientId = v
	}

	p.DeviceCode = r.Tags["device_code"]
	p.SensorType = r.Tags["sensor_type"]

	if v, ok := r.Value.(float64); ok {
		p.Value = v
	} else {
		return fmt.Errorf("Unexpected value for sensor_sample: %v", r.Value)
	}

	p.Timestamp = r.Timestamp

	return nil
}

func (p *SensorSample) ToRecord(r *lib.SchemaRecord) {
	r.Measurement = p.Measurement()
	r.Tags["patient_id"] = strconv.Itoa(p.PatientId)
	r.Tags["device_code"] = p.DeviceCode
	r.Tags["sensor_type"] = p.SensorType
	r.Fields["value"] = p.Value
	r.Timestamp = p.Timestamp
}
