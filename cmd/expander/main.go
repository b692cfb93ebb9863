// Copyright 2018 Yannick Couzinié
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yannick-c/expander/cnf"
	"github.com/yannick-c/expander/db"
	"github.com/yannick-c/expander/library"
	"github.com/yannick-c/expander/proc"
	"github.com/yannick-c/expander/tagging"
)

const version = "1.0.0"

func loadConfOrDefault(path string) (*cnf.ExpanderConf, error) {
	if path == "" {
		return &cnf.ExpanderConf{}, nil
	}
	return cnf.LoadConf(path)
}

// expandTaggedInput reads word<TAB>tag lines with blank lines between
// sentences and writes one expanded sentence per line.
func expandTaggedInput(e *proc.Expander, in *bufio.Scanner, out *bufio.Writer) error {
	var sent tagging.Sentence
	flush := func() error {
		if len(sent) == 0 {
			return nil
		}
		_, err := fmt.Fprintln(out, proc.JoinWords(e.ExpandTagged(sent)))
		sent = nil
		return err
	}
	for in.Scan() {
		line := strings.TrimRight(in.Text(), "\r\n")
		if line == "" {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		word, tag, ok := strings.Cut(line, "\t")
		if !ok {
			return fmt.Errorf("malformed input line '%s', expected word<TAB>tag", line)
		}
		sent = append(sent, tagging.Token{Word: word, Tag: tag})
	}
	if err := in.Err(); err != nil {
		return err
	}
	return flush()
}

// expandRawInput reads one sentence per line, tokenizing and tagging
// through the expander's collaborators.
func expandRawInput(
	ctx context.Context,
	e *proc.Expander,
	in *bufio.Scanner,
	out *bufio.Writer,
) error {
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		ans, err := e.ExpandText(ctx, []string{line})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, ans[0]); err != nil {
			return err
		}
	}
	return in.Err()
}

func runExpand(args []string) {
	expandCmd := flag.NewFlagSet("expand", flag.ExitOnError)
	confPath := expandCmd.String("conf", "", "a path to an expander configuration file")
	tagged := expandCmd.Bool("tagged", false,
		"input is already tagged (word<TAB>tag lines, blank line between sentences)")
	inFile := expandCmd.String("in", "", "input file (default stdin)")
	expandCmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s expand [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Expand contractions in text read from stdin or a file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		expandCmd.PrintDefaults()
	}
	expandCmd.Parse(args)

	conf, err := loadConfOrDefault(*confPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
		return
	}
	e, err := library.NewExpanderFromConf(conf, heuristicTagger{}, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create expander")
		return
	}

	input := os.Stdin
	if *inFile != "" {
		input, err = os.Open(*inFile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open input")
			return
		}
		defer input.Close()
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	in := bufio.NewScanner(input)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	if *tagged {
		err = expandTaggedInput(e, in, out)

	} else {
		err = expandRawInput(ctx, e, in, out)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to expand input")
	}
}

func runBuild(args []string) {
	buildCmd := flag.NewFlagSet("build", flag.ExitOnError)
	buildCmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s build <config-file>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Build a disambiguation table from configured vertical files.\n")
	}
	buildCmd.Parse(args)
	if buildCmd.NArg() < 1 {
		buildCmd.Usage()
		os.Exit(1)
	}
	conf, err := cnf.LoadConf(buildCmd.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
		return
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	statusChan, err := library.BuildTable(ctx, conf, heuristicTagger{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start build")
		return
	}
	var numErrors int
	for status := range statusChan {
		if status.Error != nil {
			numErrors++
			log.Error().Err(status.Error).Str("file", status.File).Msg("build error")

		} else {
			log.Info().
				Str("file", status.File).
				Int("sentences", status.ProcessedSents).
				Int("matches", status.NumMatches).
				Msg("processed vertical")
		}
	}
	if numErrors > 0 {
		log.Fatal().Int("numErrors", numErrors).Msg("build failed")
	}
}

func dumpNewConf() {
	var conf cnf.ExpanderConf
	conf.DisambiguationsFile = "disambiguations.json"
	conf.TagMods = ""
	conf.DB = db.Conf{}
	conf.NER.EntityTag = tagging.DefaultEntityTag
	conf.NER.PronounVariants = []string{"she", "he"}
	conf.Builder.TrailingTags = 1
	conf.Builder.Vertical.File = "corpus.vert"
	conf.Builder.Vertical.TagColumn = 1
	conf.Builder.Vertical.SentenceStruct = "s"
	conf.Builder.Vertical.Encoding = "UTF-8"
	rawData, err := json.MarshalIndent(conf, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to dump a new config")
		return
	}
	fmt.Println(string(rawData))
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "expander %s - expands English contractions in tagged text\n\n", version)
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  expand    Expand contractions in text from stdin or a file\n")
	fmt.Fprintf(os.Stderr, "  build     Build a disambiguation table from vertical files\n")
	fmt.Fprintf(os.Stderr, "  template  Write a half empty sample config to stdout\n")
	fmt.Fprintf(os.Stderr, "\nRun '%s <command> -h' for more information about a command.\n", os.Args[0])
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "expand":
		runExpand(os.Args[2:])
	case "build":
		runBuild(os.Args[2:])
	case "template":
		dumpNewConf()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}
