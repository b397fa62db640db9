// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rpc 节点的 http json 接口
package rpc

import (
	"net"
	"net/http"
	"time"

	log "github.com/33cn/raffle/common/log"
	"github.com/33cn/raffle/pluginmgr"
	rpctypes "github.com/33cn/raffle/rpc/types"
	"github.com/33cn/raffle/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kevinms/leakybucket-go"
	"github.com/pkg/errors"
	"github.com/rs/cors"
)

var rlog = log.New("module", "rpc")

const (
	// 每个 ip 每秒的请求数
	ipLimit = 20
	ipBurst = 40

	headerRequestID = "X-Request-Id"
)

// Server http 服务
type Server struct {
	cfg       *types.RPC
	api       rpctypes.API
	engine    *gin.Engine
	v1        *gin.RouterGroup
	ipLimiter *leakybucket.Collector
	server    *http.Server
	listener  net.Listener
}

// New 创建服务并注册系统以及插件的路由
func New(cfg *types.RPC, api rpctypes.API) *Server {
	if cfg == nil {
		cfg = &types.RPC{}
	}
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		cfg:       cfg,
		api:       api,
		engine:    gin.New(),
		ipLimiter: leakybucket.NewCollector(ipLimit, ipBurst, true),
	}
	s.engine.Use(gin.Recovery(), requestID(), accessLog(), s.rateLimit())
	s.v1 = s.engine.Group("/v1")
	s.v1.GET("/status", s.status)
	s.v1.GET("/account/:addr", s.getAccount)
	s.v1.POST("/account/faucet", s.faucet)
	s.v1.GET("/tx/:hash", s.getTx)
	s.v1.GET("/metrics", s.getMetrics)
	pluginmgr.AddRPC(s)
	return s
}

// API 节点接口
func (s *Server) API() rpctypes.API {
	return s.api
}

// Group /v1/<name>
func (s *Server) Group(name string) *gin.RouterGroup {
	return s.v1.Group("/" + name)
}

// Handler 带跨域处理的 http handler
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", rpctypes.HeaderAddr, headerRequestID},
		ExposedHeaders: []string{headerRequestID},
	})
	return c.Handler(s.engine)
}

// Listen 监听 cfg.ListenAddr, 返回实际的地址
func (s *Server) Listen() (string, error) {
	listener, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return "", errors.Wrap(err, "rpc listen")
	}
	s.listener = listener
	s.server = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			rlog.Error("rpc serve", "err", err)
		}
	}()
	rlog.Info("rpc listen", "addr", listener.Addr().String(), "faucet", s.cfg.EnableFaucet)
	return listener.Addr().String(), nil
}

// Close 关闭服务
func (s *Server) Close() {
	if s.server != nil {
		s.server.Close()
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(headerRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		rlog.Debug("request", "id", c.GetString(headerRequestID), "method", c.Request.Method, "path", c.Request.URL.Path,
			"status", c.Writer.Status(), "cost", time.Since(start))
	}
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if s.ipLimiter.Remaining(ip) <= 0 {
			rlog.Warn("rate limit", "ip", ip)
			rpctypes.WriteError(c, rpctypes.ErrTooManyRequests)
			return
		}
		s.ipLimiter.Add(ip, 1)
		c.Next()
	}
}
