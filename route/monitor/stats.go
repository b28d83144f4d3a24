package monitor

import (
	"net/http"
	"time"

	"github.com/sepguard/sepguard-server/model"
	S "github.com/sepguard/sepguard-server/service"
	"github.com/sepguard/sepguard-server/route/shared"
)

const statsCacheKey = "dashboard_stats"

// fetchStats godoc
// @summary ダッシュボード統計を取得する。
// @description 入院患者数、高リスク患者数、未確認criticalアラート数、当日の評価件数を返す。
// @description 集計結果は短時間キャッシュされる。
// @tags [monitor] Stats
// @produce json
// @success 200 {object} model.DashboardStats "統計。"
// @failure 500 {object} shared.ErrorResponse "サーバエラーが発生。"
// @router /1/stats [get]
func fetchStats(c *shared.Context) error {
	if cached, be := c.GetCache().Get(statsCacheKey); be {
		return c.JSON(http.StatusOK, cached.(*model.DashboardStats))
	}

	service := shared.CreateService(S.StatsService{}, c).(*S.StatsService)

	stats, err := service.Collect(c.LocalTime())

	if err != nil {
		return err
	}

	c.GetCache().Set(statsCacheKey, stats, 30*time.Second)

	return c.JSON(http.StatusOK, stats)
}
