// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

//DefaultConfig 默认配置, 用户配置中没有的项从这里补全
var DefaultConfig = `
Title="local"

[log]
# 日志级别，支持debug(dbug)/info/warn/error(eror)/crit
loglevel = "debug"
logConsoleLevel = "info"
# 日志文件名，可带目录，所有生成的日志文件都放到此目录下
logFile = "logs/raffle.log"
# 单个日志文件的最大值（单位：兆）
maxFileSize = 300
# 最多保存的历史日志文件个数
maxBackups = 100
# 最多保存的历史日志消息（单位：天）
maxAge = 28
# 日志文件名是否使用本地事件（否则使用UTC时间）
localTime = true
# 历史日志文件是否压缩（压缩格式为gz）
compress = true
# 是否打印调用源文件和行号
callerFile = false
# 是否打印调用方法
callerFunction = false

# 按 module 单独设置级别, 没有列出的 module 使用上面的级别
[log.moduleLevel]
"execs" = "info"

[store]
name="raffle"
# 支持 memdb/leveldb/goleveldb/badger/bbolt
driver="leveldb"
dbPath="datadir"
dbCache=64

[rpc]
listenAddr="localhost:8801"
enableFaucet=false
faucetAmount=1000000000

[metrics]
enableMetrics=true
duration=60

[exec.sub.raffle]
# 每个抽奖号码进入奖池的金额
poolShare=10000000
# 每个抽奖号码的手续费
operatorShare=1000000
# 激活账户的费用
activationFee=10000000
# 每一轮的持续时间（单位：秒）
roundDuration=60
maxEntriesPerRound=1000
# 为空时使用 raffle 合约地址派生的手续费地址
feeCollector=""
requireActivation=false
`
