package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/kvit-s/ctxpatch/internal/config"
	"github.com/kvit-s/ctxpatch/internal/engine"
	"github.com/kvit-s/ctxpatch/internal/logging"
	"github.com/kvit-s/ctxpatch/internal/patchtext"
	"github.com/kvit-s/ctxpatch/internal/render"
	"github.com/kvit-s/ctxpatch/internal/store"
)

// Version info set by ldflags at build time
var (
	version    = "dev"
	commitHash = "dev"
	commitDate = "unknown"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	logFile := flag.String("log", "", "log file path (overrides config; empty keeps config value)")
	rootDir := flag.String("root", ".", "root directory for relative symbol locators")
	dryRun := flag.Bool("dry-run", false, "validate and print diffs without persisting")
	jsonInput := flag.Bool("json", false, "read chunks as JSON instead of patch text")
	colorMode := flag.String("color", "", "color output: auto, always, never (overrides config)")
	showVersion := flag.Bool("version", false, "show version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ctxpatch %s-%s-%s\n", version, commitDate, commitHash)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *logFile != "" {
		cfg.Log.Path = *logFile
	}
	if *colorMode != "" {
		cfg.Output.Color = *colorMode
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	switch cfg.Output.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	input, err := readInput(flag.Args())
	if err != nil {
		log.Fatalf("Failed to read patch: %v", err)
	}

	var patches []patchtext.SymbolPatch
	if *jsonInput {
		patches, err = patchtext.ParseJSON(input)
	} else {
		patches, err = patchtext.Parse(string(input))
	}
	if err != nil {
		logger.Error("patch parse failed", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, logger, store.NewFileStore(*rootDir), patches, *dryRun); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// pendingWrite is a fully validated rewrite waiting for the persist phase.
type pendingWrite struct {
	symbol  store.Symbol
	newText string
	chunks  int
}

// run validates every symbol patch before persisting any of them, so a
// failure in a later symbol leaves earlier symbols untouched too.
func run(cfg *config.Config, logger *logging.Logger, st store.SymbolStore, patches []patchtext.SymbolPatch, dryRun bool) error {
	var writes []pendingWrite

	for _, p := range patches {
		if cfg.Engine.MaxChunks > 0 && len(p.Chunks) > cfg.Engine.MaxChunks {
			return fmt.Errorf("%s: %d chunks exceeds engine.max_chunks (%d)",
				p.Locator, len(p.Chunks), cfg.Engine.MaxChunks)
		}

		sym, err := st.Resolve(p.Locator)
		if err != nil {
			logger.Error("symbol resolution failed", err)
			return err
		}

		start := time.Now()
		newText, perr := engine.ApplyText(sym.Text, p.Chunks)
		if perr != nil {
			logger.PatchRejected(p.Locator, perr.ChunkIndex, perr.Message)
			return fmt.Errorf("%s: %s", p.Locator, engine.FormatPatchError(perr))
		}
		logger.PatchApplied(p.Locator, len(p.Chunks), time.Since(start))

		if cfg.Output.Diff {
			diff, derr := render.UnifiedDiff(sym.Text, newText, p.Locator)
			if derr == nil && diff != "" {
				fmt.Println(render.Colorize(diff))
			}
		}

		writes = append(writes, pendingWrite{symbol: sym, newText: newText, chunks: len(p.Chunks)})
	}

	if dryRun {
		fmt.Printf("Validated %d symbol(s), nothing persisted (dry run)\n", len(writes))
		return nil
	}

	for _, w := range writes {
		if err := st.Persist(w.symbol, w.newText); err != nil {
			logger.Error("persist failed", err)
			return err
		}
		fmt.Printf("Applied %d chunk(s) to %s\n", w.chunks, w.symbol.Locator)
	}
	return nil
}

func readInput(args []string) ([]byte, error) {
	if len(args) > 0 && args[0] != "-" {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}
