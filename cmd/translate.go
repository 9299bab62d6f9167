/*
Copyright © 2026 Viktor Kozyrev <viktor.kozyrev@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vkozyrev/gemmatran/internal/config"
	"github.com/vkozyrev/gemmatran/internal/detector"
	"github.com/vkozyrev/gemmatran/internal/pipeline"
	"github.com/vkozyrev/gemmatran/internal/store"
	"github.com/vkozyrev/gemmatran/internal/translator"
)

var (
	inputFile  string
	outputFile string
	dbPath     string
	noResume   bool
)

// chunkJoiner separates translated chunks in the output file.
const chunkJoiner = "\n\n"

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate a text document chunk by chunk",
	Long: `Translate a text document using a local language model.

The document is split into chunks no larger than --chunk-size characters,
breaking at paragraph, line, sentence, clause, or word boundaries where
possible. Chunks are translated strictly in order, one request at a time.

Interrupting a run (Ctrl-C) writes everything translated so far to the
output file; with the checkpoint database enabled (default), a rerun of
the same document resumes where it stopped.

Pass --source-code auto to detect the source language from the document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		if outputFile == "" {
			outputFile = defaultOutputPath(inputFile, settings.TargetCode)
		}
		if inputFile == outputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		raw, err := os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		text := string(raw)
		if strings.TrimSpace(text) == "" {
			log.Warn("input file is empty, nothing to translate", "input", inputFile)
			return nil
		}

		if settings.SourceCode == config.AutoCode {
			lang, ok := detector.New().Detect(text)
			if !ok {
				return fmt.Errorf("could not detect source language; pass --source-code explicitly")
			}
			settings.SourceLang, settings.SourceCode = lang.Name, lang.Code
			log.Info("detected source language", "language", lang.Name, "code", lang.Code)
		}

		svc, err := buildCompleter(settings)
		if err != nil {
			return err
		}
		if err := svc.Ping(cmd.Context()); err != nil {
			if reportUnavailable(err) {
				os.Exit(1)
			}
			log.Warn("model server health check failed, continuing", "err", err)
		}

		var checkpoints *store.Checkpoints
		if !noResume && dbPath != "" {
			if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
				return fmt.Errorf("failed to create checkpoint directory: %w", err)
			}
			checkpoints, err = store.Open(dbPath)
			if err != nil {
				return err
			}
			defer checkpoints.Close()
		}

		log.Info("starting translation",
			"model", settings.ModelName,
			"api", settings.API,
			"from", settings.SourceLang,
			"to", settings.TargetLang,
			"chunk_size", settings.ChunkSize,
			"input", inputFile,
			"output", outputFile,
		)

		pipe := pipeline.New(settings, svc, checkpoints)
		log.Info("document split", "chunks", len(pipe.Chunks(text)))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var translated []string
		var runErr error
		for res, err := range pipe.Translate(ctx, text) {
			if err != nil {
				runErr = err
				break
			}
			translated = append(translated, res.Text)
			log.Info("translated chunk", "chunk", res.Index+1, "total", res.Total)
		}

		if runErr == nil {
			if err := writeOutput(outputFile, translated); err != nil {
				return err
			}
			log.Info("translation complete", "output", outputFile)
			return nil
		}

		// The run ended early: keep whatever was translated.
		if len(translated) > 0 {
			if err := writeOutput(outputFile, translated); err != nil {
				log.Error("failed to write partial output", "err", err)
			} else {
				log.Warn("partial output saved", "output", outputFile, "chunks", len(translated))
			}
		}

		if errors.Is(runErr, context.Canceled) {
			log.Warn("translation cancelled")
			os.Exit(130)
		}
		if reportUnavailable(runErr) {
			os.Exit(1)
		}
		return fmt.Errorf("translation failed: %w", runErr)
	},
}

// reportUnavailable logs a service-unavailable error with its remediation
// hint and reports whether err was one.
func reportUnavailable(err error) bool {
	if !translator.IsUnavailable(err) {
		return false
	}
	log.Error(err)
	log.Info("hint: start the model server first, e.g. `ollama serve`")
	return true
}

func writeOutput(path string, chunks []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(strings.Join(chunks, chunkJoiner)), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(translateCmd)
	cobra.OnInitialize(initConfig)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file to translate (required)")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: input name with target code suffix)")

	translateCmd.Flags().StringP("model", "m", "", "Model name")
	translateCmd.Flags().String("api-base", "", "Model server base URL")
	translateCmd.Flags().String("api", "", "Service API kind: ollama or openai")
	translateCmd.Flags().StringP("source-lang", "s", "", "Source language name")
	translateCmd.Flags().String("source-code", "", "Source language ISO code, or 'auto' to detect")
	translateCmd.Flags().StringP("target-lang", "t", "", "Target language name")
	translateCmd.Flags().String("target-code", "", "Target language ISO code")
	translateCmd.Flags().Int("chunk-size", 0, "Characters per chunk")
	translateCmd.Flags().Int("chunk-overlap", 0, "Overlapping characters between chunks")

	translateCmd.Flags().StringVar(&dbPath, "db", defaultDBPath(), "Checkpoint database path")
	translateCmd.Flags().BoolVar(&noResume, "no-resume", false, "Disable chunk checkpointing and resume")

	viper.BindPFlag("model_name", translateCmd.Flags().Lookup("model"))
	viper.BindPFlag("api_base", translateCmd.Flags().Lookup("api-base"))
	viper.BindPFlag("api", translateCmd.Flags().Lookup("api"))
	viper.BindPFlag("source_lang", translateCmd.Flags().Lookup("source-lang"))
	viper.BindPFlag("source_code", translateCmd.Flags().Lookup("source-code"))
	viper.BindPFlag("target_lang", translateCmd.Flags().Lookup("target-lang"))
	viper.BindPFlag("target_code", translateCmd.Flags().Lookup("target-code"))
	viper.BindPFlag("chunk_size", translateCmd.Flags().Lookup("chunk-size"))
	viper.BindPFlag("chunk_overlap", translateCmd.Flags().Lookup("chunk-overlap"))

	translateCmd.MarkFlagRequired("input")
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gemmatran", "checkpoints.db")
}
