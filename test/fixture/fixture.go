package fixture

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/iancoleman/strcase"
	"gopkg.in/gorp.v2"
)

// Record フィクスチャ1件分のフィールド値。キーは構造体のフィールド名。
type Record map[string]interface{}

// フィクスチャの基準日時。明示されない日時フィールドはここからの相対値になる。
var BaseTime = time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)

// 指定したテーブルを空にし、連番を初期化する。
func Truncate(db *gorp.DbMap, tables ...string) {
	query := fmt.Sprintf(
		`TRUNCATE %s RESTART IDENTITY CASCADE`,
		strings.Join(tables, ", "),
	)

	if _, e := db.Exec(query); e != nil {
		panic(e)
	}
}

// 三項演算。フィクスチャ生成の分岐を簡潔に書くために使う。
func If(condition bool, truthy interface{}, falsy interface{}) interface{} {
	if condition {
		return truthy
	} else {
		return falsy
	}
}

// prototypeと同型のレコードをcount件生成して登録する。
//
// genには1から始まる通し番号(offsetを加算)とデフォルト値入りのRecordが渡され、
// 必要なフィールドを上書きする。返り値は[]*Tにキャストできる。
func Insert(db *gorp.DbMap, prototype interface{}, offset int, count int, gen func(int, Record)) interface{} {
	t := reflect.TypeOf(prototype)

	results := reflect.MakeSlice(reflect.SliceOf(reflect.PtrTo(t)), 0, count)

	for i := 1; i <= count; i++ {
		record := build(t, offset+i, gen)

		if e := db.Insert(record.Interface()); e != nil {
			panic(e)
		}

		results = reflect.Append(results, record)
	}

	return results.Interface()
}

// prototypeと同型のレコードを1件生成して登録する。
// indexは通し番号で、既に登録した件数を渡すと連番が続く。返り値は*Tにキャストできる。
func Fixture(db *gorp.DbMap, prototype interface{}, index int, gen func(int, Record)) interface{} {
	t := reflect.TypeOf(prototype)

	record := build(t, index+1, gen)

	if e := db.Insert(record.Interface()); e != nil {
		panic(e)
	}

	return record.Interface()
}

func build(t reflect.Type, index int, gen func(int, Record)) reflect.Value {
	record := Record{}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)

		if f.Name == "Id" {
			continue
		}

		record[f.Name] = defaultValue(f, index)
	}

	if gen != nil {
		gen(index, record)
	}

	value := reflect.New(t)
	element := value.Elem()

	for name, v := range record {
		field := element.FieldByName(name)

		if !field.IsValid() {
			panic(fmt.Sprintf("Unknown field '%s' for %s", name, t.Name()))
		}

		assign(field, v)
	}

	return value
}

// フィールドの型に応じたデフォルト値を生成する。
// 文字列は一意になるよう通し番号を含め、日時は基準日時からの相対値とする。
func defaultValue(f reflect.StructField, index int) interface{} {
	ft := f.Type

	if ft.Kind() == reflect.Ptr {
		return nil
	}

	if ft == reflect.TypeOf(time.Time{}) {
		return BaseTime.Add(time.Duration(index) * time.Minute)
	}

	switch ft.Kind() {
	case reflect.String:
		return fmt.Sprintf("%s-%04d", strcase.ToKebab(f.Name), index)
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int64:
		return 0
	case reflect.Float64:
		return 0.0
	default:
		return nil
	}
}

func assign(field reflect.Value, value interface{}) {
	if value == nil {
		return
	}

	v := reflect.ValueOf(value)

	if field.Kind() == reflect.Ptr {
		if v.Kind() == reflect.Ptr {
			field.Set(v)
		} else {
			p := reflect.New(field.Type().Elem())
			p.Elem().Set(v.Convert(field.Type().Elem()))
			field.Set(p)
		}
	} else {
		field.Set(v.Convert(field.Type()))
	}
}

// レスポンスボディのJSONをholderへ読み込んで返す。
func FromJsonResponse(t *testing.T, rec *httptest.ResponseRecorder, holder interface{}) interface{} {
	if e := json.Unmarshal(rec.Body.Bytes(), holder); e != nil {
		t.Fatalf("Failed to parse response body: %v", e)
	}

	return holder
}
