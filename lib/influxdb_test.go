package lib

import (
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/assert"
)

const (
	testBucket string = "sepguard"
)

type TestSample struct {
	Device string
	Kind   string
	Label  string
	Count  int64
	Now    time.Time
}

func (p TestSample) Measurement() string {
	return "unittest"
}

func (p *TestSample) ToRecord(record *SchemaRecord) {
	record.Tags["device"] = p.Device
	record.Tags["kind"] = p.Kind
	record.Fields["label"] = p.Label
	record.Fields["count"] = p.Count
	record.Timestamp = p.Now
}

func (p *TestSample) FromRecord(record *PointRecord) (err error) {
	p.Device = record.Tags["device"]
	p.Kind = record.Tags["kind"]

	switch record.Field {
	case "label":
		p.Label = record.Value.(string)
	case "count":
		p.Count = record.Value.(int64)
	}
	p.Now = record.Timestamp
	return
}

var (
	epochPast   time.Time = time.Unix(0, 0)
	epochFuture time.Time = time.Now().Add(time.Duration(100*365*24) * time.Hour)
)

func TestMain(m *testing.M) {
	root := os.Getenv("SERVER_ROOT")

	paths := []string{
		path.Join(root, "data/config", ".env.test"),
		path.Join(root, "data/config", ".env.local.test"),
	}
	if e := godotenv.Load(paths...); e != nil {
		log.Fatalf("Failed to load %v: %v\n", paths, e)
	}

	config := InfluxDBConfiguration{}

	if e := envconfig.Process("influxdb", &config); e != nil {
		log.Fatalf("Failed to process: %v\n", e)
	}

	SetupInfluxDB(&config)

	m.Run()
}

func TestInfluxDB_Insert(t *testing.T) {
	client := GetInfluxDB()

	client.Delete(testBucket, epochPast, epochFuture, "")

	errors := client.Insert(
		testBucket,
		&TestSample{"abc", "xyz", "ABC", 100, time.Date(2026, time.May, 1, 11, 22, 33, 0, time.UTC)},
		&TestSample{"def", "uvw", "DEF", 200, time.Date(2026, time.May, 2, 11, 22, 33, 0, time.UTC)},
		&TestSample{"ghi", "rst", "GHI", 300, time.Date(2026, time.May, 3, 11, 22, 33, 0, time.UTC)},
	)

	assert.EqualValues(t, 0, len(errors))

	result, err := client.BaseClient().QueryAPI("sepguard").Query(
		context.Background(),
		fmt.Sprintf(`from(bucket:"%s") |> range(start: 2026-05-01, stop:2026-06-01)`, testBucket),
	)

	assert.NoError(t, err)

	if e := result.Err(); e != nil {
		assert.FailNow(t, e.Error())
	}

	records := []PointRecord{}

	for result.Next() {
		r := result.Record()

		values := r.Values()

		p := PointRecord{
			r.Measurement(),
			map[string]string{
				"device": values["device"].(string),
				"kind":   values["kind"].(string),
			},
			r.Field(),
			r.Value(),
			r.Time(),
		}

		records = append(records, p)
	}

	assert.EqualValues(t, []PointRecord{
		PointRecord{
			"unittest",
			map[string]string{"device": "abc", "kind": "xyz"},
			"count",
			int64(100),
			time.Date(2026, time.May, 1, 11, 22, 33, 0, time.UTC),
		},
		PointRecord{
			"unittest",
			map[string]string{"device": "abc", "kind": "xyz"},
			"label",
			"ABC",
			time.Date(2026, time.May, 1, 11, 22, 33, 0, time.UTC),
		},
		PointRecord{
			"unittest",
			map[string]string{"device": "def", "kind": "uvw"},
			"count",
			int64(200),
			time.Date(2026, time.May, 2, 11, 22, 33, 0, time.UTC),
		},
		PointRecord{
			"unittest",
			map[string]string{"device": "def", "kind": "uvw"},
			"label",
			"DEF",
			time.Date(2026, time.May, 2, 11, 22, 33, 0, time.UTC),
		},
		PointRecord{
			"unittest",
			map[string]string{"device": "ghi", "kind": "rst"},
			"count",
			int64(300),
			time.Date(2026, time.May, 3, 11, 22, 33, 0, time.UTC),
		},
		PointRecord{
			"unittest",
			map[string]string{"device": "ghi", "kind": "rst"},
			"label",
			"GHI",
			time.Date(2026, time.May, 3, 11, 22, 33, 0, time.UTC),
		},
	}, records)
}

func TestInfluxDB_Select(t *testing.T) {
	client := GetInfluxDB()

	factory := func() Point { return &TestSample{} }

	RegisterPointType(factory)
	defer UnregisterPointType(factory)

	client.Delete(testBucket, epochPast, epochFuture, "")

	api := client.BaseClient().WriteAPI("sepguard", testBucket)

	baseTime := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		api.WritePoint(influxdb2.NewPoint(
			"unittest",
			map[string]string{"device": fmt.Sprintf("aa%d", i), "kind": fmt.Sprintf("ab%d", i)},
			map[string]interface{}{"label": fmt.Sprintf("F%d", i), "count": 100 * (i + 1)},
			baseTime.Add(time.Duration(i)*time.Hour),
		))
	}

	api.Flush()

	records := []*TestSample{}

	client.Select(
		fmt.Sprintf(`from(bucket:"%s") |> range(start: 2026-05-01, stop:2026-06-01)`, testBucket),
		PointConsumer(func(point Point, field string) error {
			records = append(records, point.(*TestSample))
			return nil
		}),
	)

	assert.EqualValues(t, []*TestSample{
		&TestSample{"aa0", "ab0", "", 100, time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)},
		&TestSample{"aa0", "ab0", "F0", 0, time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)},
		&TestSample{"aa1", "ab1", "", 200, time.Date(2026, time.May, 1, 1, 0, 0, 0, time.UTC)},
		&TestSample{"aa1", "ab1", "F1", 0, time.Date(2026, time.May, 1, 1, 0, 0, 0, time.UTC)},
		&TestSample{"aa2", "ab2", "", 300, time.Date(2026, time.May, 1, 2, 0, 0, 0, time.UTC)},
		&TestSample{"aa2", "ab2", "F2", 0, time.Date(2026, time.May, 1, 2, 0, 0, 0, time.UTC)},
	}, records)
}
