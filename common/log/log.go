// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log 日志: log15 根 handler, 控制台 + lumberjack 滚动文件, 支持按 module 单独设置级别
package log

import (
	"sync"

	"github.com/33cn/raffle/types"
	log15 "github.com/inconshreveable/log15"
	colorable "github.com/mattn/go-colorable"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultLogFile 没有日志配置时使用的文件
const DefaultLogFile = "logs/raffle.log"

var (
	mu sync.Mutex
	// 当前生效的配置, SetModuleLevel 基于它重建 handler
	current = &types.Log{}
)

//SetLogLevel 只输出到控制台
func SetLogLevel(logLevel string) {
	mu.Lock()
	defer mu.Unlock()
	current = &types.Log{LogConsoleLevel: logLevel, ModuleLevel: current.ModuleLevel}
	apply(current)
}

//SetFileLog 按配置设置文件日志和控制台日志, logFile 为空时只输出到控制台
func SetFileLog(cfg *types.Log) {
	if cfg == nil {
		cfg = &types.Log{LogFile: DefaultLogFile}
	}
	c := *cfg
	fillDefaultValue(&c)
	mu.Lock()
	defer mu.Unlock()
	current = &c
	apply(current)
}

//SetModuleLevel 单独调整某个 module 的级别, level 为空时取消
func SetModuleLevel(module, level string) {
	mu.Lock()
	defer mu.Unlock()
	c := *current
	levels := make(map[string]string, len(c.ModuleLevel)+1)
	for k, v := range c.ModuleLevel {
		levels[k] = v
	}
	if level == "" {
		delete(levels, module)
	} else {
		levels[module] = level
	}
	c.ModuleLevel = levels
	current = &c
	apply(current)
}

// 默认 error 级别, 防止打印太多日志
func fillDefaultValue(cfg *types.Log) {
	if cfg.Loglevel == "" {
		cfg.Loglevel = log15.LvlError.String()
	}
	if cfg.LogConsoleLevel == "" {
		cfg.LogConsoleLevel = log15.LvlError.String()
	}
}

func apply(cfg *types.Log) {
	// windows 控制台通过 colorable 转换颜色
	console := log15.StreamHandler(colorable.NewColorableStdout(), log15.TerminalFormat())
	handler := levelHandler(getLevel(cfg.LogConsoleLevel), cfg.ModuleLevel, console)
	if cfg.LogFile != "" {
		handler = log15.MultiHandler(handler, fileHandler(cfg))
	}
	log15.Root().SetHandler(handler)
}

func fileHandler(cfg *types.Log) log15.Handler {
	rotate := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    int(cfg.MaxFileSize),
		MaxBackups: int(cfg.MaxBackups),
		MaxAge:     int(cfg.MaxAge),
		LocalTime:  cfg.LocalTime,
		Compress:   cfg.Compress,
	}
	h := log15.StreamHandler(rotate, log15.LogfmtFormat())
	if cfg.CallerFile {
		h = log15.CallerFileHandler(h)
	}
	if cfg.CallerFunction {
		h = log15.CallerFuncHandler(h)
	}
	return levelHandler(getLevel(cfg.Loglevel), cfg.ModuleLevel, h)
}

// levelHandler module 有单独级别时按它过滤, 否则按 lvl
func levelHandler(lvl log15.Lvl, modules map[string]string, h log15.Handler) log15.Handler {
	if len(modules) == 0 {
		return log15.LvlFilterHandler(lvl, h)
	}
	levels := make(map[string]log15.Lvl, len(modules))
	for m, s := range modules {
		levels[m] = getLevel(s)
	}
	return log15.FilterHandler(func(r *log15.Record) bool {
		if l, ok := levels[moduleOf(r)]; ok {
			return r.Lvl <= l
		}
		return r.Lvl <= lvl
	}, h)
}

func moduleOf(r *log15.Record) string {
	for i := 0; i+1 < len(r.Ctx); i += 2 {
		if k, ok := r.Ctx[i].(string); ok && k == "module" {
			if m, ok := r.Ctx[i+1].(string); ok {
				return m
			}
		}
	}
	return ""
}

func getLevel(lvlString string) log15.Lvl {
	lvl, err := log15.LvlFromString(lvlString)
	if err != nil {
		// 级别配置不正确时为 error
		return log15.LvlError
	}
	return lvl
}

//New 带上下文的 logger, 一般传入 "module", name
func New(ctx ...interface{}) log15.Logger {
	return log15.Root().New(ctx...)
}
