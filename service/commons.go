package service

import (
	"github.com/sirupsen/logrus"
)

// 全てのサービスに共通する情報。各サービスはこれを埋め込んで生成される。
type Service struct {
	Log *logrus.Entry
}
