// wordsearch solves a single puzzle:
//
//	wordsearch [flags] <dictionary> <puzzle> [min-length]
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordsearch/config"
	"github.com/domino14/wordsearch/grid"
	"github.com/domino14/wordsearch/lexicon"
	"github.com/domino14/wordsearch/puzzleio"
	"github.com/domino14/wordsearch/report"
	"github.com/domino14/wordsearch/search"
)

const histogramWidth = 50

func setupLogging(cfg *config.Config) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}
	level := zerolog.InfoLevel
	if cfg.GetBool(config.ConfigDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
	log.Debug().Msg("Debug logging is on")
}

func usage() {
	fmt.Fprintln(os.Stderr, errUsage.Error())
}

func main() {
	os.Exit(run())
}

func run() int {
	start := time.Now()
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		return 2
	}
	setupLogging(cfg)

	ex, err := os.Executable()
	if err == nil {
		cfg.AdjustRelativePaths(filepath.Dir(ex))
	}
	log.Debug().Interface("config", cfg.SanitizedSettings()).Msg("loaded-config")

	inv, err := parseArgs(cfg.Args(), cfg.GetInt(config.ConfigMinLength))
	if err == errUsage {
		usage()
		return 2
	} else if err != nil {
		log.Error().Err(err).Msg("bad-arguments")
		return 2
	}
	minLength := inv.minLength

	if p := cfg.GetString(config.ConfigCPUProfile); p != "" {
		f, err := os.Create(p)
		if err != nil {
			log.Error().Err(err).Msg("could not create CPU profile")
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Error().Err(err).Msg("could not start CPU profile")
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	format, err := report.ParseFormat(cfg.GetString(config.ConfigFormat))
	if err != nil {
		log.Error().Err(err).Msg("bad-format")
		return 2
	}
	enc, err := puzzleio.ParseEncoding(cfg.GetString(config.ConfigEncoding))
	if err != nil {
		log.Error().Err(err).Msg("bad-encoding")
		return 2
	}

	lex, err := lexicon.Get(cfg, inv.dictionary)
	if err != nil {
		log.Error().Err(err).Msg("could-not-load-dictionary")
		return 1
	}
	cells, err := puzzleio.LoadPuzzle(inv.puzzle, enc)
	if err != nil {
		log.Error().Err(err).Msg("could-not-load-puzzle")
		return 1
	}
	g, err := grid.New(cells)
	if err != nil {
		log.Error().Err(err).Msg("bad-puzzle")
		return 1
	}

	matches, err := search.FindMatchesParallel(context.Background(), g, lex,
		minLength, cfg.GetInt(config.ConfigThreads))
	if err != nil {
		log.Error().Err(err).Msg("search-failed")
		return 1
	}
	if err := report.Write(os.Stdout, format, lex.Name(), g, minLength, matches); err != nil {
		log.Error().Err(err).Msg("could-not-write-report")
		return 1
	}
	if format != report.FormatText {
		return 0
	}
	if cfg.GetBool(config.ConfigHistogram) {
		fmt.Println()
		if err := report.WriteLengthHistogram(os.Stdout, matches, histogramWidth); err != nil {
			log.Error().Err(err).Msg("could-not-write-histogram")
		}
	}
	memstats := &runtime.MemStats{}
	runtime.ReadMemStats(memstats)
	fmt.Print("\n" + report.Footer(time.Since(start), memstats.HeapAlloc, memory.TotalMemory()))
	return 0
}
