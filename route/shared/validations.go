package shared

import (
	"time"

	"github.com/sepguard/sepguard-server/constant"
)

// クエリパラメータの日時文字列をRFC3339として解釈する。空文字列はnilを返す。
func ParseTimeParam(name string, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	if t, e := time.Parse(time.RFC3339, value); e != nil {
		return nil, constant.NewBadRequestError(
			"invalid_datetime",
			"Datetime must be in RFC3339 format",
			map[string]interface{}{name: value},
		)
	} else {
		return &t, nil
	}
}

// クエリパラメータのセンサ種別を検証して返す。空文字列はnilを返す。
func ParseSensorTypeParam(value string) (*constant.SensorType, error) {
	if value == "" {
		return nil, nil
	}

	for _, t := range constant.SensorTypes {
		if string(t) == value {
			return &t, nil
		}
	}

	return nil, constant.NewBadRequestError(
		"invalid_sensor_type",
		"Unknown sensor type",
		map[string]interface{}{"type": value},
	)
}
