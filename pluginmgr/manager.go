// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pluginmgr

import (
	"sort"

	log "github.com/33cn/raffle/common/log"
	"github.com/33cn/raffle/rpc/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	mlog        = log.New("module", "plugin.manager")
	pluginItems = make(map[string]Plugin)
)

// Register 注册插件, 名称重复时 panic
func Register(p Plugin) {
	if p == nil {
		panic("plugin param is nil")
	}
	packageName := p.GetName()
	if len(packageName) == 0 {
		panic("plugin package name is empty")
	}
	if _, ok := pluginItems[packageName]; ok {
		panic("execute plugin item is existed. name = " + packageName)
	}
	pluginItems[packageName] = p
}

// 按名称排序, 保证初始化顺序固定
func items() []Plugin {
	names := make([]string, 0, len(pluginItems))
	for name := range pluginItems {
		names = append(names, name)
	}
	sort.Strings(names)
	list := make([]Plugin, 0, len(names))
	for _, name := range names {
		list = append(list, pluginItems[name])
	}
	return list
}

// InitExec 初始化所有插件的执行器
func InitExec(sub map[string][]byte) error {
	for _, item := range items() {
		if err := item.InitExec(sub); err != nil {
			mlog.Error("InitExec", "plugin", item.GetName(), "err", err)
			return errors.Wrapf(err, "init plugin %s", item.GetName())
		}
		mlog.Debug("InitExec", "plugin", item.GetName(), "exec", item.GetExecutorName())
	}
	return nil
}

// HasExec 是否有插件提供这个执行器
func HasExec(name string) bool {
	for _, item := range pluginItems {
		if item.GetExecutorName() == name {
			return true
		}
	}
	return false
}

// AddCmd 添加所有插件的命令行
func AddCmd(rootCmd *cobra.Command) {
	for _, item := range items() {
		item.AddCmd(rootCmd)
	}
}

// AddRPC 注册所有插件的 rpc 路由
func AddRPC(s types.RPCServer) {
	for _, item := range items() {
		item.AddRPC(s)
	}
}
