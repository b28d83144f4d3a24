package service

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	C "github.com/sepguard/sepguard-server/constant"
	"github.com/sepguard/sepguard-server/model"
)

// 単一の予測モデル。バイタル測定値から敗血症リスクのスコアと確信度を算出する。
//
// 必要な項目が測定値に含まれない場合など、モデルが予測を行えないときは
// PredictorUnavailableを返す。これは呼び出し側で回復可能なエラーであり、
// 当該モデルを集計から除外するのみで全体の失敗とはしない。
type Predictor interface {
	Name() string
	Predict(reading *model.VitalsReading) (float64, float64, error)
}

// モデルが予測を実行できないことを示す。
type PredictorUnavailable struct {
	Model  string
	Reason string
}

func (e *PredictorUnavailable) Error() string {
	return fmt.Sprintf("Predictor '%s' is unavailable: %s", e.Model, e.Reason)
}

func unavailable(name string, format string, args ...interface{}) error {
	return &PredictorUnavailable{name, fmt.Sprintf(format, args...)}
}

// 登録されたモデル群を集約するスコアリングエンジン。
//
// 同一の測定値と同一のモデル構成に対しては常に同一の結果を返す。
type RiskEngine struct {
	predictors []Predictor
}

func NewRiskEngine(predictors ...Predictor) *RiskEngine {
	return &RiskEngine{predictors}
}

// 標準のモデル構成によるエンジンを生成する。
func DefaultRiskEngine() *RiskEngine {
	return NewRiskEngine(
		&rapidResponseModel{},
		&inflammatoryResponseModel{},
		&earlyWarningModel{},
	)
}

// 各モデルの予測を集約する。
//
// 返り値は、総合スコア、総合確信度、及び登録順に並んだモデル別予測のリスト。
// 総合スコアは確信度による加重平均を小数第一位に丸めた値、総合確信度は単純平均。
//
// 予測不能なモデルはモデル名と理由をログに記録し集計から除外する。
// 全てのモデルが予測不能な場合はC.NO_PREDICTIONS_AVAILABLEを返す。
func (engine *RiskEngine) Score(log *logrus.Entry, reading *model.VitalsReading) (float64, float64, []*model.ModelPrediction, error) {
	predictions := []*model.ModelPrediction{}

	weighted := 0.0
	totalConfidence := 0.0

	for _, p := range engine.predictors {
		score, confidence, e := p.Predict(reading)

		if e != nil {
			if ue, ok := e.(*PredictorUnavailable); ok {
				log.Infof("Predictor '%s' is excluded from the ensemble: %s", ue.Model, ue.Reason)
				continue
			} else {
				return 0, 0, nil, e
			}
		}

		predictions = append(predictions, &model.ModelPrediction{
			Seq:        len(predictions),
			ModelName:  p.Name(),
			Prediction: score,
			Confidence: confidence,
		})

		weighted += score * confidence
		totalConfidence += confidence
	}

	if len(predictions) == 0 {
		return 0, 0, nil, C.NO_PREDICTIONS_AVAILABLE
	}

	riskScore := roundScore(weighted / totalConfidence)
	confidence := totalConfidence / float64(len(predictions))

	return riskScore, confidence, predictions, nil
}

func roundScore(value float64) float64 {
	return math.Round(value*10) / 10
}

// 呼吸数と収縮期血圧による迅速判定モデル。
//
// 両項目が揃わない限り予測を行わない。
type rapidResponseModel struct {
}

func (m *rapidResponseModel) Name() string {
	return "rapid-response"
}

func (m *rapidResponseModel) Predict(reading *model.VitalsReading) (float64, float64, error) {
	if reading.RespiratoryRate == nil {
		return 0, 0, unavailable(m.Name(), "respiratory rate is missing")
	} else if reading.SystolicBp == nil {
		return 0, 0, unavailable(m.Name(), "systolic blood pressure is missing")
	}

	points := 0

	if *reading.RespiratoryRate >= 22 {
		points++
	}
	if *reading.SystolicBp <= 100 {
		points++
	}

	scores := map[int]float64{0: 10, 1: 60, 2: 95}

	return scores[points], 0.7, nil
}

// 体温・心拍数・呼吸数の全身性炎症反応によるモデル。
//
// 三項目のうち二項目以上が揃わない場合は予測を行わない。
// スコアは評価可能な項目のうち基準を満たした割合。
type inflammatoryResponseModel struct {
}

func (m *inflammatoryResponseModel) Name() string {
	return "inflammatory-response"
}

func (m *inflammatoryResponseModel) Predict(reading *model.VitalsReading) (float64, float64, error) {
	evaluated := 0
	met := 0

	if t := reading.Temperature; t != nil {
		evaluated++
		if *t > 38.0 || *t < 36.0 {
			met++
		}
	}
	if hr := reading.HeartRate; hr != nil {
		evaluated++
		if *hr > 90 {
			met++
		}
	}
	if rr := reading.RespiratoryRate; rr != nil {
		evaluated++
		if *rr > 20 {
			met++
		}
	}

	if evaluated < 2 {
		return 0, 0, unavailable(m.Name(), "requires at least 2 of temperature, heart rate and respiratory rate")
	}

	score := float64(met) / float64(evaluated) * 100
	confidence := float64(50+10*evaluated) / 100

	return score, confidence, nil
}

// 各バイタルを帯域ごとの点数に換算して合算する早期警告モデル。
//
// 評価可能な項目が三つに満たない場合は予測を行わない。
// 確信度は評価できた項目数に比例し、最大0.9。
type earlyWarningModel struct {
}

func (m *earlyWarningModel) Name() string {
	return "early-warning"
}

func (m *earlyWarningModel) Predict(reading *model.VitalsReading) (float64, float64, error) {
	evaluated := 0
	points := 0

	if hr := reading.HeartRate; hr != nil {
		evaluated++
		switch {
		case *hr <= 40:
			points += 3
		case *hr <= 50:
			points += 1
		case *hr <= 90:
		case *hr <= 110:
			points += 1
		case *hr <= 130:
			points += 2
		default:
			points += 3
		}
	}

	if rr := reading.RespiratoryRate; rr != nil {
		evaluated++
		switch {
		case *rr <= 8:
			points += 3
		case *rr <= 11:
			points += 1
		case *rr <= 20:
		case *rr <= 24:
			points += 2
		default:
			points += 3
		}
	}

	if t := reading.Temperature; t != nil {
		evaluated++
		switch {
		case *t <= 35.0:
			points += 3
		case *t <= 36.0:
			points += 1
		case *t <= 38.0:
		case *t <= 39.0:
			points += 1
		default:
			points += 2
		}
	}

	if sp := reading.OxygenSaturation; sp != nil {
		evaluated++
		switch {
		case *sp <= 91:
			points += 3
		case *sp <= 93:
			points += 2
		case *sp <= 95:
			points += 1
		}
	}

	if sbp := reading.SystolicBp; sbp != nil {
		evaluated++
		switch {
		case *sbp <= 90:
			points += 3
		case *sbp <= 100:
			points += 2
		case *sbp <= 110:
			points += 1
		case *sbp <= 219:
		default:
			points += 3
		}
	}

	if evaluated < 3 {
		return 0, 0, unavailable(m.Name(), "requires at least 3 vital signs, got %d", evaluated)
	}

	score := math.Min(100, float64(points)/float64(evaluated*3)*100)
	confidence := math.Min(0.9, float64(18*evaluated)/100)

	return score, confidence, nil
}
