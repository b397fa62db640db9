// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"sort"

	"github.com/33cn/raffle/common/address"
	log "github.com/33cn/raffle/common/log"
	"github.com/33cn/raffle/types"
)

var elog = log.New("module", "execs")

// DriverCreate defines a drivercreate function
type DriverCreate func() Driver

var (
	registedExecDriver = make(map[string]DriverCreate)
	execAddressNameMap = make(map[string]string)
)

// Register register driver by name
func Register(name string, create DriverCreate) {
	if create == nil {
		panic("Execute: Register driver is nil")
	}
	if _, dup := registedExecDriver[name]; dup {
		panic("Execute: Register called twice for driver " + name)
	}
	registedExecDriver[name] = create
	execAddressNameMap[ExecAddress(name)] = name
}

// LoadDriver load driver
func LoadDriver(name string) (driver Driver, err error) {
	c, ok := registedExecDriver[name]
	if !ok {
		elog.Debug("LoadDriver", "driver", name)
		return nil, types.ErrUnknowDriver
	}
	return c(), nil
}

// ExecAddress 执行器地址
func ExecAddress(name string) string {
	return address.ExecAddress(name)
}

// GetExecName 根据地址查找执行器名称
func GetExecName(addr string) (string, bool) {
	name, ok := execAddressNameMap[addr]
	return name, ok
}

// Drivers 已注册的执行器名称
func Drivers() []string {
	names := make([]string, 0, len(registedExecDriver))
	for name := range registedExecDriver {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
