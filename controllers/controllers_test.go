package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"

	"github.com/bhetghat/bhetghat-server/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockConfig wires a handler Config onto mtest's command-mock client so
// handlers can be exercised without a running MongoDB.
func mockConfig(mt *mtest.T) *config.Config {
	return &config.Config{
		DBName:      "bhetghat",
		ClientURL:   "http://localhost:5173",
		ServerURL:   "http://localhost:3000",
		MongoClient: mt.Client,
		Logger:      zap.NewNop().Sugar(),
	}
}

func serve(method, path string, handler gin.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := gin.New()
	r.Handle(method, path, handler)
	r.ServeHTTP(w, req)
	return w
}

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
