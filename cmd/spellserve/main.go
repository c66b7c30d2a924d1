// Copyright 2025 The SpellServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the SpellServe trainer, scorer and IPC server.

SpellServe ranks spell-correction candidates with a compact trigram language
model. All observed n-gram counts are packed into a flat bucket array
addressed by a minimal perfect hash, with a 32-bit fingerprint per bucket
replacing the original key, so trained models stay small enough to keep
fully in memory.

# Usage

Train a model from a raw text corpus and an alphabet file:

	spellserve -train corpus.txt -alphabet alphabet_en.txt -model model.bin

Score a sentence against a trained model:

	spellserve -model model.bin -score "the cat sat"

Run the interactive CLI for testing and debugging:

	spellserve -model model.bin -c

Start the msgpack IPC server (default when a model is given):

	spellserve -model model.bin

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Requests carry a
client-chosen id and an op ("score", "rank", "complete", "health"); responses
include microsecond timing. See the server package for message layouts.

# Configuration

Runtime configuration lives in a TOML file:

	[server]
	max_limit = 64
	max_sentence_len = 256

	[cli]
	default_limit = 8

The config file is created with defaults if it doesn't exist.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/spellserve/internal/cli"
	"github.com/bastiangx/spellserve/internal/utils"
	"github.com/bastiangx/spellserve/pkg/config"
	"github.com/bastiangx/spellserve/pkg/model"
	"github.com/bastiangx/spellserve/pkg/server"
)

const (
	Version = "0.3.0-beta"
	AppName = "spellserve"
	gh      = "https://github.com/bastiangx/spellserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires flags to the trainer, scorer, CLI or server. It holds no
// logic of its own beyond mode selection.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	trainPath := flag.String("train", "", "Train a model from this raw text corpus")
	alphabetPath := flag.String("alphabet", defaultConfig.Model.AlphabetPath, "Alphabet definition file for training")
	modelPath := flag.String("model", defaultConfig.Model.ModelPath, "Model file to write (train) or read (score/serve)")
	scoreText := flag.String("score", "", "Score a sentence and exit")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configPath := flag.String("config", "spellserve.toml", "Path to TOML config")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of correction candidates to show")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, err := config.InitConfig(resolveConfigPath(*configPath))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
		os.Exit(1)
	}

	if *trainPath != "" {
		lm := model.New()
		log.Debugf("training from corpus: %s", *trainPath)
		if err := lm.Train(*trainPath, *alphabetPath); err != nil {
			log.Fatalf("Training failed: %v", err)
			os.Exit(1)
		}
		if err := lm.Save(*modelPath); err != nil {
			log.Fatalf("Failed to save model: %v", err)
			os.Exit(1)
		}
		log.Infof("model saved: %s (vocab=%d, totalWords=%d)",
			*modelPath, lm.VocabSize(), lm.TotalWords())
		return
	}

	lm := model.New()
	if err := lm.Load(*modelPath); err != nil {
		log.Fatalf("Failed to load model %s: %v", utils.GetAbsolutePath(*modelPath), err)
		os.Exit(1)
	}
	log.Debugf("model ready: %s vocab=%d totalWords=%d",
		utils.GetAbsolutePath(*modelPath), lm.VocabSize(), lm.TotalWords())

	if *scoreText != "" {
		fmt.Printf("%.6f\n", lm.ScoreText(*scoreText))
		return
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(lm, *limit, appConfig.CLI.MaxInputBytes)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
			os.Exit(1)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(lm, appConfig)
	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

// resolveConfigPath prefers the given path; when it doesn't exist as
// given, a copy next to the executable is used instead, so a deployed
// binary finds its config without cwd gymnastics. Missing both ways, the
// original path is returned and InitConfig creates defaults there.
func resolveConfigPath(path string) string {
	if utils.FileExists(path) || filepath.IsAbs(path) {
		return path
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		return path
	}
	if candidate := filepath.Join(execDir, path); utils.FileExists(candidate) {
		return candidate
	}
	return path
}

// printVersion displays version info with some minimal styling.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ SpellServe ] Ranks spelling corrections by context!")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}
