package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/ivanoskov/fivest/internal/auth"
	"github.com/ivanoskov/fivest/internal/charts"
	"github.com/ivanoskov/fivest/internal/config"
	"github.com/ivanoskov/fivest/internal/repository"
	"github.com/ivanoskov/fivest/internal/server"
	"github.com/ivanoskov/fivest/internal/service"
)

// Request структура входящего запроса от API Gateway
type Request struct {
	HTTPMethod            string            `json:"httpMethod"`
	Path                  string            `json:"path"`
	Headers               map[string]string `json:"headers,omitempty"`
	QueryStringParameters map[string]string `json:"queryStringParameters,omitempty"`
	Body                  string            `json:"body"`
	IsBase64Encoded       bool              `json:"isBase64Encoded,omitempty"`
}

// Response структура ответа для API Gateway
type Response struct {
	StatusCode      int               `json:"statusCode"`
	Body            string            `json:"body"`
	Headers         map[string]string `json:"headers,omitempty"`
	IsBase64Encoded bool              `json:"isBase64Encoded,omitempty"`
}

func Handler(ctx context.Context, request Request) (*Response, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return errorResponse(err)
	}

	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		return errorResponse(err)
	}

	sessions := auth.NewProvider(cfg.SupabaseProjectRef, cfg.SupabaseKey)
	tracker := service.NewExpenseTracker(repo)
	srv := server.NewServer(tracker, sessions, charts.NewChartGenerator())

	return serve(ctx, srv.Handler(), request)
}

// serve транслирует запрос API Gateway в обычный HTTP-запрос и обратно
func serve(ctx context.Context, handler http.Handler, request Request) (*Response, error) {
	body := []byte(request.Body)
	if request.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(request.Body)
		if err != nil {
			return errorResponse(err)
		}
		body = decoded
	}

	url := request.Path
	if len(request.QueryStringParameters) > 0 {
		params := make([]string, 0, len(request.QueryStringParameters))
		for k, v := range request.QueryStringParameters {
			params = append(params, k+"="+v)
		}
		url += "?" + strings.Join(params, "&")
	}

	req := httptest.NewRequestWithContext(ctx, request.HTTPMethod, url, bytes.NewReader(body))
	for k, v := range request.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	headers := make(map[string]string)
	for k := range rec.Header() {
		headers[k] = rec.Header().Get(k)
	}

	// Бинарные ответы (PNG-графики) кодируются в base64
	respBody := rec.Body.Bytes()
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "image/") {
		return &Response{
			StatusCode:      rec.Code,
			Body:            base64.StdEncoding.EncodeToString(respBody),
			Headers:         headers,
			IsBase64Encoded: true,
		}, nil
	}

	return &Response{
		StatusCode: rec.Code,
		Body:       string(respBody),
		Headers:    headers,
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Точка входа для локального тестирования
}
