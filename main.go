// @title SkillPath 后端 API
// @version 1.0
// @description 个性化学习路径服务：学习目标、学习计划、测评、课程推荐。

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	var configDir string

	rootCmd := &cobra.Command{
		Use:   "skillpath",
		Short: "SkillPath learning path backend",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env 不存在时直接使用环境变量
			_ = godotenv.Load()
		},
	}
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "configs", "directory containing config.yaml")

	rootCmd.AddCommand(newServeCmd(&configDir))
	rootCmd.AddCommand(newMigrateCmd(&configDir))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
