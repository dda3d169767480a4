// ABOUTME: CLI entrypoint for the flume pipeline runner with run and server modes.
// ABOUTME: Wires together the node catalog, dynamic definitions, pipeline library, and signal handling.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/flumeworks/flume/editor"
	"github.com/flumeworks/flume/flow"
	"github.com/flumeworks/flume/logic"
)

var version = "dev"

// config holds all CLI configuration parsed from flags and positional arguments.
type config struct {
	serverMode   bool
	port         int
	definitions  string
	library      string
	orderOnly    bool
	verbose      bool
	showVersion  bool
	pipelineFile string
}

func main() {
	cfg := parseFlags()

	if cfg.showVersion {
		fmt.Printf("flume %s\n", version)
		os.Exit(0)
	}

	os.Exit(run(cfg))
}

// parseFlags parses command-line flags and returns a populated config.
func parseFlags() config {
	var cfg config

	fs := flag.NewFlagSet("flume", flag.ContinueOnError)
	fs.BoolVar(&cfg.serverMode, "server", false, "Start HTTP editor server mode")
	fs.IntVar(&cfg.port, "port", 8394, "Server port (default: 8394)")
	fs.StringVar(&cfg.definitions, "definitions", "", "Dynamic node definitions file (YAML or JSON)")
	fs.StringVar(&cfg.library, "library", "", "SQLite pipeline library path (server mode)")
	fs.BoolVar(&cfg.orderOnly, "order", false, "Print the execution order without running")
	fs.BoolVar(&cfg.verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.showVersion, "version", false, "Print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: flume [flags] <pipeline-file>\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if fs.NArg() > 0 {
		cfg.pipelineFile = fs.Arg(0)
	}

	return cfg
}

// run dispatches to the appropriate mode based on the config.
// Returns an exit code: 0 for success, 1 for failure.
func run(cfg config) int {
	if cfg.serverMode {
		return runServer(cfg)
	}

	if cfg.pipelineFile == "" {
		fmt.Fprintf(os.Stderr, "usage: flume [flags] <pipeline-file>\n")
		return 0
	}

	return runPipeline(cfg)
}

// buildCatalog assembles the node catalog, installing dynamic node
// definitions from the configured file when one is given.
func buildCatalog(cfg config) (*flow.Catalog, *logic.Registry, error) {
	catalog := flow.DefaultCatalog()

	var registry *logic.Registry
	if cfg.definitions != "" {
		registry = logic.NewRegistry(cfg.definitions)
		if err := registry.Load(); err != nil {
			return nil, nil, err
		}
		registry.Install(catalog)
		if cfg.verbose {
			fmt.Fprintf(os.Stderr, "[catalog] %d dynamic node definitions loaded\n", len(registry.List()))
		}
	}

	return catalog, registry, nil
}

// runPipeline loads a pipeline snapshot file and executes it.
func runPipeline(cfg config) int {
	catalog, _, err := buildCatalog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	snap, err := flow.LoadSnapshotFile(cfg.pipelineFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	pipeline := flow.Restore(snap, catalog)

	if cfg.orderOnly {
		for _, id := range pipeline.ExecutionOrder() {
			node := pipeline.Node(id)
			fmt.Printf("%s\t%s\t%s\n", id, node.Type(), node.Name())
		}
		return 0
	}

	if cfg.verbose {
		pipeline.SetEventHandler(verboseEventHandler)
	}

	result := pipeline.Execute()

	// Print per-node results to stdout in a stable order.
	ids := make([]string, 0, len(result.Results))
	for id := range result.Results {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		res := result.Results[id]
		node := pipeline.Node(id)
		status := "ok"
		if !res.Success {
			status = "failed"
		}
		fmt.Printf("%s [%s]: %s", node.Name(), node.Type(), status)
		for port, val := range res.Outputs {
			fmt.Printf(" %s=%v", port, val)
		}
		fmt.Println()
	}

	if !result.Complete {
		fmt.Fprintln(os.Stderr, "pipeline stalled: some nodes never became ready")
		return 1
	}

	fmt.Println("Pipeline completed.")
	return 0
}

// runServer starts the HTTP editor server.
func runServer(cfg config) int {
	catalog, registry, err := buildCatalog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	store := editor.NewStore(100, 30*time.Minute)
	stopCleanup := store.StartCleanup(5 * time.Minute)
	defer stopCleanup()

	opts := []editor.ServerOption{}
	if registry != nil {
		opts = append(opts, editor.WithRegistry(registry))
	}
	if cfg.library != "" {
		lib, err := editor.OpenLibrary(cfg.library)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		defer func() { _ = lib.Close() }()
		opts = append(opts, editor.WithLibrary(lib))
	}

	server := editor.NewServer(store, catalog, opts...)
	addr := fmt.Sprintf("127.0.0.1:%d", cfg.port)

	// Set up context with signal handling for graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		cancel()
	}()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: server,
	}

	go func() {
		<-ctx.Done()
		httpServer.Close()
	}()

	fmt.Fprintf(os.Stderr, "listening on %s\n", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	return 0
}

// verboseEventHandler prints scheduler lifecycle events to stderr.
func verboseEventHandler(evt flow.Event) {
	switch evt.Type {
	case flow.EventPipelineStarted:
		fmt.Fprintf(os.Stderr, "[pipeline] started\n")
	case flow.EventNodeStarted:
		fmt.Fprintf(os.Stderr, "[node] %s started\n", evt.NodeID)
	case flow.EventNodeCompleted:
		fmt.Fprintf(os.Stderr, "[node] %s completed\n", evt.NodeID)
	case flow.EventNodeFailed:
		fmt.Fprintf(os.Stderr, "[node] %s failed\n", evt.NodeID)
	case flow.EventPipelineStalled:
		fmt.Fprintf(os.Stderr, "[pipeline] stalled\n")
	case flow.EventPipelineCompleted:
		fmt.Fprintf(os.Stderr, "[pipeline] completed\n")
	}
}
