package lib

import (
	"encoding/json"
	"fmt"
)

// MaybeJson スキーマの保証されないJSON値への安全なアクセサ。
// 存在しないキーや型の不一致は空値として扱われ、パニックしない。
type MaybeJson interface {
	Interface() interface{}

	Get(key string) MaybeJson

	At(index int) MaybeJson

	String(def string) string

	Float64(def float64) float64

	Int64(def int64) int64

	Bool(def bool) bool

	IsNull() bool

	IsValid() bool
}

func ParseJson(data []byte) (MaybeJson, error) {
	var v interface{}

	if e := json.Unmarshal(data, &v); e != nil {
		return jsonEmpty{}, fmt.Errorf("Failed to parse JSON: %v", e)
	}

	return AsJson(v), nil
}

func AsJson(j interface{}) MaybeJson {
	if j == nil {
		return jsonNull{jsonEmpty{}}
	}

	switch v := j.(type) {
	case bool:
		return jsonBool{v, jsonEmpty{}}
	case float64:
		return jsonNumber{v, jsonEmpty{}}
	case string:
		return jsonString{v, jsonEmpty{}}
	case []interface{}:
		return jsonArray{v, jsonEmpty{}}
	case map[string]interface{}:
		return jsonObject{v, jsonEmpty{}}
	default:
		return jsonEmpty{}
	}
}

// 値が存在しない場合の既定実装。
type jsonEmpty struct{}

func (j jsonEmpty) Interface() interface{}      { return nil }
func (j jsonEmpty) Get(key string) MaybeJson    { return jsonEmpty{} }
func (j jsonEmpty) At(index int) MaybeJson      { return jsonEmpty{} }
func (j jsonEmpty) String(def string) string    { return def }
func (j jsonEmpty) Float64(def float64) float64 { return def }
func (j jsonEmpty) Int64(def int64) int64       { return def }
func (j jsonEmpty) Bool(def bool) bool          { return def }
func (j jsonEmpty) IsNull() bool                { return false }
func (j jsonEmpty) IsValid() bool               { return false }

type jsonNull struct {
	jsonEmpty
}

func (j jsonNull) IsNull() bool  { return true }
func (j jsonNull) IsValid() bool { return true }

type jsonBool struct {
	value bool
	jsonEmpty
}

func (j jsonBool) Interface() interface{} { return j.value }
func (j jsonBool) Bool(def bool) bool     { return j.value }
func (j jsonBool) IsValid() bool          { return true }

type jsonNumber struct {
	value float64
	jsonEmpty
}

func (j jsonNumber) Interface() interface{}      { return j.value }
func (j jsonNumber) Float64(def float64) float64 { return j.value }
func (j jsonNumber) Int64(def int64) int64       { return int64(j.value) }
func (j jsonNumber) IsValid() bool               { return true }

type jsonString struct {
	value string
	jsonEmpty
}

func (j jsonString) Interface() interface{}   { return j.value }
func (j jsonString) String(def string) string { return j.value }
func (j jsonString) IsValid() bool            { return true }

type jsonArray struct {
	values []interface{}
	jsonEmpty
}

func (j jsonArray) Interface() interface{} { return j.values }
func (j jsonArray) IsValid() bool          { return true }

func (j jsonArray) At(index int) MaybeJson {
	if index >= 0 && index < len(j.values) {
		return AsJson(j.values[index])
	} else {
		return jsonEmpty{}
	}
}

type jsonObject struct {
	object map[string]interface{}
	jsonEmpty
}

func (j jsonObject) Interface() interface{} { return j.object }
func (j jsonObject) IsValid() bool          { return true }

func (j jsonObject) Get(key string) MaybeJson {
	if v, has := j.object[key]; has {
		return AsJson(v)
	} else {
		return jsonEmpty{}
	}
}
