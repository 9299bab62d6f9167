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
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gemmatran",
	Short: "Translate large documents with a local LLM",
	Long: `gemmatran translates large text documents using local language models
served by Ollama (or any server with an OpenAI-compatible endpoint).

Documents are split into size-bounded chunks at natural boundaries
(paragraphs, sentences, words) and translated one chunk at a time, so
progress is visible and an interrupted run keeps everything translated
so far.

Use "gemmatran translate --help" for translation options.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.gemmatran.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

func initLogging() {
	log.SetReportTimestamp(false)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}
