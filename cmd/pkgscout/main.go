package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/pkgscout/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	query := flag.String("query", "", "print suggestions for a query and exit")
	ephemeral := flag.Bool("ephemeral", false, "keep recent searches and saved items in memory only")
	logLines := flag.Int("logs", 0, "print the last N log lines and exit")
	savedList := flag.String("saved", "", "print a saved list (favorites or watchlist) and exit")
	unsave := flag.String("unsave", "", "with -saved, remove a package from the list first")
	clearSaved := flag.Bool("clear", false, "with -saved, empty the list first")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Query:      *query,
		Ephemeral:  *ephemeral,
		LogLines:   *logLines,
		SavedList:  *savedList,
		Unsave:     *unsave,
		ClearSaved: *clearSaved,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "pkgscout: %v\n", err)
		return 1
	}
	return 0
}
