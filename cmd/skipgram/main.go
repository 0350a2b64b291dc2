/*
 * Copyright (c) 2024 The skipgram authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of
 * this software and associated documentation files (the "Software"), to deal in
 * the Software without restriction, including without limitation the rights to
 * use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
 * the Software, and to permit persons to whom the Software is furnished to do so,
 * subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
 * FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
 * COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
 * IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 */

// Command skipgram trains skip-gram word embeddings with negative
// sampling.
//
// Usage:
//
//	skipgram vocab -corpus corpus.txt -vocab vocab.txt
//	skipgram train -corpus corpus.txt -vocab vocab.txt -output vectors.txt
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	"skipgram"
)

const (
	vocabCommand = "vocab"
	trainCommand = "train"
)

func main() {
	flags := flag.NewFlagSet("default", flag.ExitOnError)
	corpusPath := flags.String("corpus", "", "path to corpus")
	vocabPath := flags.String("vocab", "", "path where to output/load vocab")
	outputPath := flags.String("output", "", "where to save vectors")
	dim := flags.Int("dim", 300, "number of dimensions of word vectors")
	window := flags.Int("window", 5, "symmetric window of (window, word, window)")
	subsample := flags.Float64("subsample", 1e-3, "subsampling threshold, 0 to disable")
	negative := flags.Int("negative", 5, "number of negative samples per batch")
	batchSize := flags.Int("batch", 1000, "pairs per training batch")
	epochs := flags.Int("epochs", 10, "how many times to process corpus")
	alpha := flags.Float64("alpha", 0.001, "learning rate")
	report := flags.Int("report", 500, "log progress every this many batches, 0 to silence")
	minFreq := flags.Int("minfreq", 1, "remove from vocab words that occur less than this number of times")
	maxVocab := flags.Int("maxvocab", 0, "max vocab size, 0 for no limit")
	seed := flags.Int64("seed", 1, "random seed")
	periodIsSpace := flags.Bool("periodiswhitespace", false, "treat period as whitespace")
	spoolDir := flags.String("spool", "", "spool the tokenized corpus into a disk store under this directory and replay it across epochs")
	verbose := flags.Int("verbose", 1, "verboseness (0 = errors only, 1 = info, 2 = debug)")
	cpuprofile := flags.String("cpuprofile", "", "write cpu profile to this directory")

	flags.Usage = func() {
		fmt.Printf("Usage: skipgram [command] [options]\n" +
			"Commands: vocab, train\n" +
			"Options:\n")
		flags.PrintDefaults()
	}

	if len(os.Args) < 2 {
		flags.Usage()
		os.Exit(1)
	}
	command := os.Args[1]
	flags.Parse(os.Args[2:])

	log := logrus.New()
	switch *verbose {
	case 0:
		log.SetLevel(logrus.ErrorLevel)
	case 1:
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.DebugLevel)
	}
	logrus.SetLevel(log.GetLevel())

	if *cpuprofile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuprofile)).Stop()
	}

	if *corpusPath == "" {
		log.Fatal("corpus is a required argument")
	}
	var corpus skipgram.Corpus = &skipgram.TextCorpus{
		Path:          *corpusPath,
		PeriodIsSpace: *periodIsSpace,
	}
	if *spoolDir != "" {
		spooled, err := skipgram.NewSpooledCorpus(corpus, *spoolDir)
		if err != nil {
			log.Fatal(err)
		}
		defer spooled.Close()
		corpus = spooled
	}

	rng := rand.New(rand.NewSource(*seed))

	switch command {
	case vocabCommand:
		if *vocabPath == "" {
			log.Fatal("vocab is a required argument")
		}
		log.Info("building vocab")
		vocab, err := skipgram.BuildVocab(corpus, uint32(*minFreq), uint32(*maxVocab))
		if err != nil {
			log.Fatal(err)
		}
		log.WithFields(logrus.Fields{"size": vocab.Size(), "tokens": vocab.Total()}).Info("vocab built")
		if err := vocab.Save(*vocabPath); err != nil {
			log.Fatal(err)
		}

	case trainCommand:
		if *outputPath == "" {
			log.Fatal("output (where to save vectors) is a required argument")
		}
		cfg := skipgram.Config{
			WindowSize:  *window,
			Subsample:   *subsample,
			NegSample:   *negative,
			HiddenDim:   *dim,
			BatchSize:   *batchSize,
			Epochs:      *epochs,
			Alpha:       *alpha,
			ReportEvery: *report,
		}
		if err := cfg.Validate(); err != nil {
			log.Fatal(err)
		}

		var vocab *skipgram.Vocab
		var err error
		if *vocabPath != "" {
			log.Info("reading vocab")
			vocab, err = skipgram.LoadVocab(*vocabPath)
		} else {
			log.Info("building vocab")
			vocab, err = skipgram.BuildVocab(corpus, uint32(*minFreq), uint32(*maxVocab))
		}
		if err != nil {
			log.Fatal(err)
		}
		log.WithFields(logrus.Fields{"size": vocab.Size(), "tokens": vocab.Total()}).Info("vocab ready")

		reader := skipgram.NewSampledReader(cfg.Subsample, rng)
		reader.UseVocab(vocab)

		model, err := skipgram.NewSGDModel(vocab, cfg, rng)
		if err != nil {
			log.Fatal(err)
		}
		loop, err := skipgram.NewLoop(cfg, reader, model, log)
		if err != nil {
			log.Fatal(err)
		}
		log.Info("running skipgram")
		if err := loop.Run(corpus); err != nil {
			log.Fatal(err)
		}

		log.Info("outputting vectors")
		out, err := os.Create(*outputPath)
		if err != nil {
			log.Fatal(err)
		}
		defer out.Close()
		if err := model.SaveVectors(out, vocab, skipgram.TableInput); err != nil {
			log.Fatal(err)
		}

	default:
		flags.Usage()
		os.Exit(1)
	}

	log.Info("finished!")
}
