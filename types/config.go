// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"bytes"
	"encoding/json"
	"io/ioutil"

	tml "github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

//Config 节点配置
type Config struct {
	Title   string   `json:"title,omitempty"`
	Log     *Log     `json:"log,omitempty"`
	Store   *Store   `json:"store,omitempty"`
	RPC     *RPC     `json:"rpc,omitempty"`
	Metrics *Metrics `json:"metrics,omitempty"`
}

//Log 日志配置
type Log struct {
	// 日志级别，支持debug(dbug)/info/warn/error(eror)/crit
	Loglevel        string `json:"loglevel,omitempty"`
	LogConsoleLevel string `json:"logConsoleLevel,omitempty"`
	// 日志文件名，可带目录，所有生成的日志文件都放到此目录下
	LogFile string `json:"logFile,omitempty"`
	// 单个日志文件的最大值（单位：兆）
	MaxFileSize uint32 `json:"maxFileSize,omitempty"`
	// 最多保存的历史日志文件个数
	MaxBackups uint32 `json:"maxBackups,omitempty"`
	// 最多保存的历史日志消息（单位：天）
	MaxAge uint32 `json:"maxAge,omitempty"`
	// 日志文件名是否使用本地事件（否则使用UTC时间）
	LocalTime bool `json:"localTime,omitempty"`
	// 历史日志文件是否压缩（压缩格式为gz）
	Compress bool `json:"compress,omitempty"`
	// 是否打印调用源文件和行号
	CallerFile bool `json:"callerFile,omitempty"`
	// 是否打印调用方法
	CallerFunction bool `json:"callerFunction,omitempty"`
	// 按 module 单独设置级别, 例如 "execs.raffle" = "debug"
	ModuleLevel map[string]string `json:"moduleLevel,omitempty"`
}

//Store 数据库配置
type Store struct {
	Name    string `json:"name,omitempty"`
	Driver  string `json:"driver,omitempty"`
	DbPath  string `json:"dbPath,omitempty"`
	DbCache int32  `json:"dbCache,omitempty"`
}

//RPC http 服务配置
type RPC struct {
	ListenAddr   string `json:"listenAddr,omitempty"`
	EnableFaucet bool   `json:"enableFaucet,omitempty"`
	// 水龙头单次发放的金额
	FaucetAmount int64 `json:"faucetAmount,omitempty"`
}

//Metrics 统计配置
type Metrics struct {
	EnableMetrics bool `json:"enableMetrics,omitempty"`
	// 周期性输出统计日志的间隔（单位：秒）, 0 表示不输出
	Duration int64 `json:"duration,omitempty"`
}

//ConfigSubModule 子模块配置, key 为子模块名称, value 为 json 编码的配置
type ConfigSubModule struct {
	Exec map[string][]byte
}

// subModule 子模块结构体
type subModule struct {
	Exec map[string]interface{}
}

//InitCfg 读取配置文件, 未配置的项使用默认配置
func InitCfg(path string) (*Config, *ConfigSubModule, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read config %s", path)
	}
	return InitCfgString(string(data))
}

//InitCfgString 从字符串初始化配置
func InitCfgString(cfgstring string) (*Config, *ConfigSubModule, error) {
	merged, err := mergeCfgString(cfgstring, DefaultConfig)
	if err != nil {
		return nil, nil, err
	}
	var cfg Config
	if _, err := tml.Decode(merged, &cfg); err != nil {
		return nil, nil, errors.Wrap(err, "decode config")
	}
	var sub subModule
	if _, err := tml.Decode(merged, &sub); err != nil {
		return nil, nil, errors.Wrap(err, "decode sub config")
	}
	return &cfg, &ConfigSubModule{Exec: parseItem(sub.Exec)}, nil
}

func mergeCfgString(cfgstring, cfgdefault string) (string, error) {
	def := make(map[string]interface{})
	if _, err := tml.Decode(cfgdefault, &def); err != nil {
		return "", errors.Wrap(err, "decode default config")
	}
	conf := make(map[string]interface{})
	if _, err := tml.Decode(cfgstring, &conf); err != nil {
		return "", errors.Wrap(err, "decode config")
	}
	MergeConfig(conf, def)
	buf := new(bytes.Buffer)
	if err := tml.NewEncoder(buf).Encode(conf); err != nil {
		return "", errors.Wrap(err, "encode config")
	}
	return buf.String(), nil
}

//MergeConfig 把默认配置 def 中 conf 没有配置的项合并进 conf
func MergeConfig(conf map[string]interface{}, def map[string]interface{}) {
	for key, vdef := range def {
		v, ok := conf[key]
		if !ok {
			conf[key] = vdef
			continue
		}
		conf1, ok1 := v.(map[string]interface{})
		def1, ok2 := vdef.(map[string]interface{})
		if ok1 && ok2 {
			MergeConfig(conf1, def1)
		}
	}
}

func parseItem(data map[string]interface{}) map[string][]byte {
	subconfig := make(map[string][]byte)
	if len(data) == 0 {
		return subconfig
	}
	subcfg, ok := data["sub"].(map[string]interface{})
	if !ok {
		return subconfig
	}
	for k := range subcfg {
		subconfig[k], _ = json.Marshal(subcfg[k])
	}
	return subconfig
}

//ModifySubConfig json data modify
func ModifySubConfig(sub []byte, key string, value interface{}) ([]byte, error) {
	var data map[string]interface{}
	err := json.Unmarshal(sub, &data)
	if err != nil {
		return nil, err
	}
	data[key] = value
	return json.Marshal(data)
}
