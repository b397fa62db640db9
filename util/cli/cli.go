// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"os"

	"github.com/33cn/raffle/common/log"
	"github.com/33cn/raffle/pluginmgr"
	"github.com/33cn/raffle/system/dapp/commands"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "raffle",
	Short: "raffle node and client tools",
}

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Run raffle node",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("conf")
		datadir, _ := cmd.Flags().GetString("datadir")
		if err := RunNode(configPath, datadir); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	nodeCmd.Flags().StringP("conf", "f", "", "config file, default config is used when empty")
	nodeCmd.Flags().String("datadir", "", "data dir of raffle, include logs and datas")
	rootCmd.AddCommand(
		commands.AccountCmd(),
		commands.TxCmd(),
		commands.StatusCmd(),
		nodeCmd,
	)
}

//Run :
func Run(RPCAddr string) {
	pluginmgr.AddCmd(rootCmd)
	log.SetLogLevel("error")
	rootCmd.PersistentFlags().String("rpc_laddr", RPCAddr, "http url")
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
