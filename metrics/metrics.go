// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics 交易执行的统计, 基于 go-metrics 的默认 registry
package metrics

import (
	"fmt"
	"io"
	"time"

	rlog "github.com/33cn/raffle/common/log"
	"github.com/33cn/raffle/types"
	go_metrics "github.com/rcrowley/go-metrics"
)

var (
	log = rlog.New("module", "raffle metrics")
)

// Namespace 统计项名称的前缀
var Namespace = "raffle"

//StartMetrics 根据配置文件相关参数启动周期性的统计日志
func StartMetrics(cfg *types.Metrics) {
	if cfg == nil || !cfg.EnableMetrics {
		log.Info("Metrics data is not enabled to emit")
		go_metrics.UseNilMetrics = true
		return
	}
	if cfg.Duration <= 0 {
		return
	}
	go go_metrics.Log(go_metrics.DefaultRegistry, time.Duration(cfg.Duration)*time.Second, logAdapter{})
}

type logAdapter struct{}

func (logAdapter) Printf(format string, v ...interface{}) {
	log.Info(fmt.Sprintf(format, v...))
}

func name(parts ...string) string {
	s := Namespace
	for _, p := range parts {
		s += "." + p
	}
	return s
}

//TxCounter 按执行器, action 以及结果(ok/pack/err)计数
func TxCounter(execer, action, result string) go_metrics.Counter {
	return go_metrics.GetOrRegisterCounter(name("tx", execer, action, result), nil)
}

//ExecTimer 交易执行耗时
func ExecTimer(execer string) go_metrics.Timer {
	return go_metrics.GetOrRegisterTimer(name("exec", execer), nil)
}

//Gauge 当前值, 比如最新的槽位
func Gauge(parts ...string) go_metrics.Gauge {
	return go_metrics.GetOrRegisterGauge(name(parts...), nil)
}

//Snapshot 所有统计项的当前值
func Snapshot() map[string]map[string]interface{} {
	return go_metrics.DefaultRegistry.GetAll()
}

//WriteJSON 以 json 格式输出所有统计项
func WriteJSON(w io.Writer) {
	go_metrics.WriteJSONOnce(go_metrics.DefaultRegistry, w)
}
