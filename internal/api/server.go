package api

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ig-reward-gate/internal/config"
	"ig-reward-gate/internal/fraud"
)

// EngineFactory 按设备构造风控引擎（决定底层存储的选择）
type EngineFactory func(deviceID string) (*fraud.Engine, error)

// Server HTTP 服务封装。每个设备持有独立的引擎实例，
// 引擎按设备缓存，调用方如需更强的串行化可在此基础上排队。
type Server struct {
	cfg       config.Config
	newEngine EngineFactory
	router    *gin.Engine

	mu      sync.Mutex
	engines map[string]*fraud.Engine
}

func NewServer(cfg config.Config, newEngine EngineFactory) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		cfg:       cfg,
		newEngine: newEngine,
		router:    gin.New(),
		engines:   make(map[string]*fraud.Engine),
	}

	server.router.Use(gin.Recovery())
	server.registerRoutes()

	return server
}

func (s *Server) Run() error {
	return s.router.Run(":" + s.cfg.Port)
}

func (s *Server) registerRoutes() {
	s.router.GET("/v1/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC().Format(time.RFC3339)})
	})

	s.router.POST("/v1/fraud/check", s.handleCheck)
	s.router.POST("/v1/fraud/duplicate", s.handleDuplicate)
	s.router.GET("/v1/fraud/ratelimit", s.handleRateLimit)
	s.router.GET("/v1/fraud/velocity", s.handleVelocity)
	s.router.POST("/v1/fraud/account", s.handleAccount)
	s.router.GET("/v1/fraud/stats", s.handleStats)

	s.router.POST("/v1/submissions", s.handleRecordSubmission)
	s.router.DELETE("/v1/submissions", s.handleClearHistory)
}

func (s *Server) handleCheck(c *gin.Context) {
	engine, ok := s.deviceEngine(c)
	if !ok {
		return
	}

	var req CheckRequest
	if !bindRequest(c, &req) {
		return
	}

	result := engine.PerformCheck(c.Request.Context(), req.URL, fraud.CheckOptions{
		SkipAccountVerification: req.SkipAccountVerification,
	})

	// 拦截与否是业务数据而非传输错误，统一 200 返回
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

func (s *Server) handleDuplicate(c *gin.Context) {
	engine, ok := s.deviceEngine(c)
	if !ok {
		return
	}

	var req SubmitRequest
	if !bindRequest(c, &req) {
		return
	}

	result := engine.CheckDuplicateURL(c.Request.Context(), req.URL)
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

func (s *Server) handleRateLimit(c *gin.Context) {
	engine, ok := s.deviceEngine(c)
	if !ok {
		return
	}

	result := engine.CheckRateLimit(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

func (s *Server) handleVelocity(c *gin.Context) {
	engine, ok := s.deviceEngine(c)
	if !ok {
		return
	}

	result := engine.CheckVelocity(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

func (s *Server) handleAccount(c *gin.Context) {
	engine, ok := s.deviceEngine(c)
	if !ok {
		return
	}

	var req SubmitRequest
	if !bindRequest(c, &req) {
		return
	}

	result := engine.VerifyAccount(c.Request.Context(), req.URL)
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

func (s *Server) handleRecordSubmission(c *gin.Context) {
	engine, ok := s.deviceEngine(c)
	if !ok {
		return
	}

	var req SubmitRequest
	if !bindRequest(c, &req) {
		return
	}

	if err := engine.RecordSubmission(c.Request.Context(), req.URL); err != nil {
		writeError(c, http.StatusInternalServerError, "记录提交失败: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleClearHistory(c *gin.Context) {
	engine, ok := s.deviceEngine(c)
	if !ok {
		return
	}

	if err := engine.ClearHistory(c.Request.Context()); err != nil {
		writeError(c, http.StatusInternalServerError, "清空历史失败: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleStats(c *gin.Context) {
	engine, ok := s.deviceEngine(c)
	if !ok {
		return
	}

	stats := engine.Stats(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// deviceEngine 校验 X-Device-Id 并返回该设备的引擎实例
func (s *Server) deviceEngine(c *gin.Context) (*fraud.Engine, bool) {
	raw := strings.TrimSpace(c.GetHeader("X-Device-Id"))
	deviceID, err := uuid.Parse(raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, "X-Device-Id 缺失或不是合法 UUID")
		return nil, false
	}

	key := deviceID.String()

	s.mu.Lock()
	defer s.mu.Unlock()

	if engine, exists := s.engines[key]; exists {
		return engine, true
	}

	engine, err := s.newEngine(key)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "初始化风控引擎失败: "+err.Error())
		return nil, false
	}

	s.engines[key] = engine
	return engine, true
}

type normalizableRequest interface {
	Normalize()
	Validate() error
}

func bindRequest(c *gin.Context, req normalizableRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, http.StatusBadRequest, "请求体格式无效")
		return false
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		if typed, ok := err.(apiError); ok {
			writeError(c, typed.Code, typed.Message)
			return false
		}
		writeError(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func writeError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"error":   message,
	})
}
