package main

import (
	"context"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"coopdefense/server"
)

// 入口：启动 HTTP + WebSocket 服务、房间管理器与 Tick 驱动
func main() {
	var addr, envFile string
	flag.StringVar(&addr, "addr", "", "server listen address, e.g. :3000 (overrides TD_ADDR/PORT)")
	flag.StringVar(&envFile, "env", ".env", "optional dotenv file")
	flag.Parse()

	cfg, err := server.LoadConfig(envFile)
	if err != nil {
		panic(err)
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if err := server.InitLogger(cfg.LogFile, cfg.LogLevel); err != nil {
		panic(err)
	}
	defer server.SyncLogger()

	rm := server.NewRoomManager(cfg.MaxPlayers, cfg.Rules)
	scheduler := server.NewScheduler(rm, cfg.TickInterval())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	go scheduler.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", server.HandleWS(rm))
	// 前后端分离：将 / 映射到静态资源目录
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	// 管理与监控接口
	mux.HandleFunc("/admin/config", server.HandleAdminConfig(rm))
	mux.HandleFunc("/admin/rooms", server.HandleRooms(rm))
	mux.HandleFunc("/metrics", server.HandleMetrics(rm))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		server.Log.Infof("tower defense server listening on %s (tick %s, max players %d)", cfg.Addr, cfg.TickInterval(), cfg.MaxPlayers)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			server.Log.Errorf("listen: %v", err)
			cancel()
		}
	}()

	// 优雅退出（Ctrl+C）
	<-ctx.Done()
	server.Log.Info("Shutting down...")
	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		server.Log.Warnf("shutdown: %v", err)
	}
}
