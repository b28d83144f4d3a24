package config

import (
	"fmt"
	"log"
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"github.com/sepguard/sepguard-server/lib"
	"github.com/sepguard/sepguard-server/model"
)

const (
	// dataBasePath 設定ファイルのベースパス。
	dataBasePath = "data/config"
)

var appConfig *configuration

// appConfiguration アプリケーション設定
//  `.env.{SERVER_ENV}` ファイルに含まれる設定値を取得し管理する
type configuration struct {
	Server     ServerConfiguration
	DB         lib.DatabaseConfiguration
	ReadDB     lib.DatabaseConfiguration
	Lang       lib.LanguageConfiguration
	InfluxDB   lib.InfluxDBConfiguration
	Evaluation EvaluationConfiguration
}

// ServerConfig サーバ設定情報。
type ServerConfiguration struct {
	Port       string
	Dump       bool
	ApiVersion string `envconfig:"API_VERSION"`
}

// EvaluationConfiguration 評価バッチの設定情報。
type EvaluationConfiguration struct {
	// Workers 同時に評価する患者数。
	Workers int
	// Force trueの場合、スケジュールの次回実行時刻に達していなくても実行する。
	Force bool
}

func SetupAll() {
	if appConfig == nil {
		env := strings.ToLower(os.Getenv("SERVER_ENV"))
		if len(env) == 0 {
			env = "test"
		}

		root := os.Getenv("SERVER_ROOT")

		paths := []string{path.Join(root, dataBasePath, ".env."+env)}
		if env != "test" {
			paths = append(paths, path.Join(root, dataBasePath, ".env.local"))
		} else {
			paths = append(paths, path.Join(root, dataBasePath, ".env.local.test"))
		}
		if err := godotenv.Load(paths...); err != nil {
			log.Fatalf("Failed to load %v: %v\n", paths, err)
		}

		load := func(prefix string, config interface{}) {
			err := envconfig.Process(prefix, config)
			if err != nil {
				log.Printf("An error occured during loading %#v\n", err)
			}
		}

		appConfig = &configuration{}
		load("server", &appConfig.Server)
		load("db", &appConfig.DB)
		load("read_db", &appConfig.ReadDB)
		load("lang", &appConfig.Lang)
		load("influxdb", &appConfig.InfluxDB)
		load("evaluation", &appConfig.Evaluation)

		if env != "test" {
			log.Println(&appConfig.DB)
			log.Println(&appConfig.ReadDB)
			log.Println(&appConfig.InfluxDB)
		}

		// Read/Write用DBの設定
		if err := lib.SetupDatabase(lib.WriteDBKey, &appConfig.DB); err != nil {
			log.Fatalf("Failed to setup default database %v\n", err.Error())
		}
		// Read用DBの設定
		if err := lib.SetupDatabase(lib.ReadDBKey, &appConfig.ReadDB); err != nil {
			log.Fatalf("Failed to setup read database %v\n", err.Error())
		}

		if err := lib.SetupInfluxDB(&appConfig.InfluxDB); err != nil {
			log.Fatalf("Failed to setup influxDB %v\n", err.Error())
		}

		lib.SetupI18n(&appConfig.Lang)

		model.SetupModels()

		setLogger()
	}
}

type ContextHook struct{}

func (hook ContextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook ContextHook) Fire(entry *logrus.Entry) error {
	if pc, file, line, ok := runtime.Caller(10); ok {
		funcName := runtime.FuncForPC(pc).Name()
		entry.Data["source"] = fmt.Sprintf("%s:%v:%s", path.Base(file), line, path.Base(funcName))
	}

	return nil
}

func setLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.DebugLevel)
}

func ServerConfig() *ServerConfiguration {
	return &appConfig.Server
}

func EvaluationConfig() *EvaluationConfiguration {
	return &appConfig.Evaluation
}
