// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pluginmgr

import (
	"github.com/33cn/raffle/rpc/types"
	"github.com/spf13/cobra"
)

// PluginBase 插件的公共实现
type PluginBase struct {
	Name     string
	ExecName string
	RPC      func(name string, s types.RPCServer)
	Exec     func(name string, sub []byte) error
	Cmd      func() *cobra.Command
}

// GetName 插件名称
func (p *PluginBase) GetName() string {
	return p.Name
}

// GetExecutorName 执行器名称
func (p *PluginBase) GetExecutorName() string {
	return p.ExecName
}

// InitExec 使用执行器自己的子配置初始化
func (p *PluginBase) InitExec(sub map[string][]byte) error {
	if p.Exec == nil {
		return nil
	}
	subcfg, ok := sub[p.ExecName]
	if !ok {
		subcfg = nil
	}
	return p.Exec(p.ExecName, subcfg)
}

// AddCmd 添加命令行
func (p *PluginBase) AddCmd(rootCmd *cobra.Command) {
	if p.Cmd != nil {
		cmd := p.Cmd()
		if cmd == nil {
			return
		}
		rootCmd.AddCommand(cmd)
	}
}

// AddRPC 注册 rpc 路由
func (p *PluginBase) AddRPC(c types.RPCServer) {
	if p.RPC != nil {
		p.RPC(p.GetExecutorName(), c)
	}
}
