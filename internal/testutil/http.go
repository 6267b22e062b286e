package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Envelope 测试中解析的响应信封
type Envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// Request 构造测试请求，body 为 string 时原样发送，否则编码为 JSON
func Request(t *testing.T, method, target string, body interface{}, headers map[string]string) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

// Do 执行请求并返回响应记录
func Do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// Bearer 生成 Authorization 头
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// DecodeEnvelope 解析响应信封
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return env
}

// DecodeData 把信封中的 data 解析到 v
func DecodeData(t *testing.T, env Envelope, v interface{}) {
	t.Helper()
	require.NotEmpty(t, env.Data)
	require.NoError(t, json.Unmarshal(env.Data, v))
}
