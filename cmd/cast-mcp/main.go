package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/casttools/cast/internal/catalog"
	castmcp "github.com/casttools/cast/internal/mcp"
	"github.com/casttools/cast/pkg/analysis"
	"github.com/casttools/cast/pkg/refactor"
	"github.com/casttools/cast/pkg/watch"
)

const version = "0.1.0"

func main() {
	var (
		portFlag    = flag.Int("port", 0, "TCP port to listen on (0 for stdio)")
		debugFlag   = flag.Bool("debug", false, "Enable debug logging")
		watchFlag   = flag.Bool("watch", false, "Invalidate the parse cache when target files change on disk")
		versionFlag = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("cast-mcp v%s\n", version)
		fmt.Println("Model Context Protocol server for single-file refactoring")
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *debugFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	parser := analysis.NewParser()
	engine := refactor.NewEngine(parser, logger)

	if *watchFlag {
		watcher, err := watch.NewWatcher(parser.Cache(), 200*time.Millisecond, logger)
		if err != nil {
			logger.Warn("watcher unavailable, parse cache will rely on mtime checks only", "err", err)
		} else {
			engine.SetTracker(watcher.Track)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			defer watcher.Close()
			go func() {
				if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
					logger.Error("watcher stopped", "err", err)
				}
			}()
		}
	}

	// A registry that cannot be built is fatal: the server must not start
	// with a partial capability catalog.
	registry, err := catalog.Build(engine)
	if err != nil {
		logger.Error("capability registry build failed", "err", err)
		os.Exit(1)
	}
	logger.Info("capability registry built", "capabilities", registry.Len())

	mcpServer := server.NewMCPServer(
		"cast-mcp",
		version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	dispatcher := castmcp.NewDispatcher(engine, logger)
	adapter := castmcp.NewAdapter(registry, dispatcher, logger)
	adapter.Register(mcpServer)

	if *portFlag == 0 {
		if err := server.ServeStdio(mcpServer); err != nil {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
		return
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer)
	logger.Info("starting HTTP server", "port", *portFlag)
	if err := httpServer.Start(fmt.Sprintf(":%d", *portFlag)); err != nil {
		logger.Error("HTTP server failed", "err", err)
		os.Exit(1)
	}
}
