// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pluginmgr 插件的注册以及初始化: 执行器, 命令行以及 rpc 路由
package pluginmgr

import (
	"github.com/33cn/raffle/rpc/types"
	"github.com/spf13/cobra"
)

// Plugin 插件
type Plugin interface {
	// 获取整个插件的包名，用以计算唯一值、做前缀等
	GetName() string
	// 获取插件中执行器名
	GetExecutorName() string
	// 初始化执行器时会调用该接口, sub 为 [exec.sub] 下的配置
	InitExec(sub map[string][]byte) error
	AddCmd(rootCmd *cobra.Command)
	AddRPC(s types.RPCServer)
}
