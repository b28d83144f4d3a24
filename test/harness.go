package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sepguard/sepguard-server/config"
	app_middleware "github.com/sepguard/sepguard-server/route/middleware"
	"github.com/sepguard/sepguard-server/route/shared"
)

func init() {
	os.Setenv("SERVER_ENV", "test")
	config.SetupAll()
}

// ルートを登録していないテスト用のハンドラを生成する。
// 各パッケージのテストがこれに自身のAPIを登録して使う。
func TestHandler() *echo.Echo {
	e := echo.New()

	e.HTTPErrorHandler = shared.APIErrorHandler

	e.Use(middleware.RequestID())
	e.Use(app_middleware.SessionLogger)
	e.Use(app_middleware.I18n)
	e.Use(app_middleware.Transactional)

	return e
}

// HTTPテスト1件分の定義。
type HttpTest struct {
	Name    string
	Method  string
	Path    string
	Query   func(url.Values)
	Body    []byte
	Prepare func(req *http.Request)
	Check   func(t *testing.T, rec *httptest.ResponseRecorder)
}

type HttpTests []HttpTest

// JSONのリクエストボディを生成する。
func JsonBody(value interface{}) []byte {
	data, e := json.Marshal(value)

	if e != nil {
		panic(e)
	}

	return data
}

// 定義された全テストをサブテストとして実行する。
// setupは全テストに先立って一度だけ呼ばれる。
func (tests HttpTests) Run(handler *echo.Echo, t *testing.T, setup func()) {
	if setup != nil {
		setup()
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.Name, func(t *testing.T) {
			path := tc.Path

			if tc.Query != nil {
				q := url.Values{}
				tc.Query(q)
				path = path + "?" + q.Encode()
			}

			var body io.Reader

			if tc.Body != nil {
				body = bytes.NewReader(tc.Body)
			}

			req := httptest.NewRequest(tc.Method, path, body)

			if tc.Body != nil {
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			}

			if tc.Prepare != nil {
				tc.Prepare(req)
			}

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if tc.Check != nil {
				tc.Check(t, rec)
			}
		})
	}
}
