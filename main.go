package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mhsanaei/blog/config"
	"github.com/mhsanaei/blog/database"
	"github.com/mhsanaei/blog/logger"
	"github.com/mhsanaei/blog/util/common"
	"github.com/mhsanaei/blog/web"
	"github.com/mhsanaei/blog/web/service"

	"github.com/spf13/cobra"
)

func openDB() error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	return database.Open(config.GetDatabaseConfig())
}

func runWebServer() {
	defer common.Recover("web server")

	if err := config.LoadEnv(); err != nil {
		log.Fatal("load .env failed: ", err)
	}
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	level, err := logger.LevelFor(config.GetLogLevel())
	if err != nil {
		log.Fatal(err)
	}
	logger.InitLogger(level)
	defer logger.CloseLogger()

	err = database.Open(config.GetDatabaseConfig())
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			logger.Warning("close database err:", err)
		}
	}()

	server := web.NewServer()
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, os.Interrupt)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Noticef("Received %v, restarting web server", sig)
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			logger.Notice("Shutting down web server")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func showSetting() {
	if err := openDB(); err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	settingService := service.SettingService{}
	listen, err := settingService.GetListen()
	if err != nil {
		fmt.Println("get current listen address failed, error info:", err)
	}
	port, err := settingService.GetPort()
	if err != nil {
		fmt.Println("get current port failed, error info:", err)
	}
	maxAge, err := settingService.GetSessionMaxAge()
	if err != nil {
		fmt.Println("get session max age failed, error info:", err)
	}

	userService := service.UserService{}
	admin, err := userService.GetAdmin()

	fmt.Println("current blog settings as follows:")
	fmt.Println("listen:", listen)
	fmt.Println("port:", port)
	fmt.Println("sessionMaxAge (minutes):", maxAge)
	if err != nil {
		fmt.Println("admin: none registered yet")
	} else {
		fmt.Printf("admin: %s <%s>\n", admin.Name, admin.Email)
	}
}

func updateSetting(port int, listen string, maxAge int, resetSecret bool) {
	if err := openDB(); err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	settingService := service.SettingService{}

	if port > 0 {
		if err := settingService.SetPort(port); err != nil {
			fmt.Println("set port failed:", err)
		} else {
			fmt.Printf("set port %v success\n", port)
		}
	}
	if listen != "" {
		if err := settingService.SetListen(listen); err != nil {
			fmt.Println("set listen failed:", err)
		} else {
			fmt.Printf("set listen %v success\n", listen)
		}
	}
	if maxAge >= 0 {
		if err := settingService.SetSessionMaxAge(maxAge); err != nil {
			fmt.Println("set session max age failed:", err)
		} else {
			fmt.Printf("set session max age %v success\n", maxAge)
		}
	}
	if resetSecret {
		if err := settingService.ResetSecret(); err != nil {
			fmt.Println("reset secret failed:", err)
		} else {
			fmt.Println("reset secret success, every session is now invalid")
		}
	}
}

func updateAdmin(password string) {
	if err := openDB(); err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	userService := service.UserService{}
	if err := userService.UpdateAdminPassword(password); err != nil {
		fmt.Println("set admin password failed:", err)
	} else {
		fmt.Println("set admin password success")
	}
}

func main() {
	var rootCmd = &cobra.Command{
		Use:     config.GetName(),
		Version: config.GetVersion(),
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Show or change settings",
	}

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting()
		},
	}

	var updateCmd = &cobra.Command{
		Use:   "update",
		Short: "Update settings",
		Run: func(cmd *cobra.Command, args []string) {
			port, _ := cmd.Flags().GetInt("port")
			listen, _ := cmd.Flags().GetString("listen")
			maxAge, _ := cmd.Flags().GetInt("maxage")
			resetSecret, _ := cmd.Flags().GetBool("reset-secret")
			updateSetting(port, listen, maxAge, resetSecret)
		},
	}

	updateCmd.Flags().Int("port", 0, "set web port")
	updateCmd.Flags().String("listen", "", "set listen address")
	updateCmd.Flags().Int("maxage", -1, "set session max age in minutes, 0 for browser session")
	updateCmd.Flags().Bool("reset-secret", false, "generate a new session secret")

	var adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Change the admin password",
		Run: func(cmd *cobra.Command, args []string) {
			password, _ := cmd.Flags().GetString("password")
			updateAdmin(password)
		},
	}

	adminCmd.Flags().String("password", "", "set admin password")
	_ = adminCmd.MarkFlagRequired("password")

	settingCmd.AddCommand(showCmd, updateCmd, adminCmd)

	rootCmd.AddCommand(runCmd, settingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
