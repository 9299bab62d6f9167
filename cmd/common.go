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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/vkozyrev/gemmatran/internal/config"
	"github.com/vkozyrev/gemmatran/internal/translator"
)

// initConfig wires the config file and environment into viper. Precedence
// stays flags > file > env > defaults because flags are bound with
// BindPFlag and only override when changed.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".gemmatran")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// buildCompleter constructs the service client selected by settings.
func buildCompleter(s *config.Settings) (translator.Completer, error) {
	switch s.API {
	case "ollama":
		return translator.NewOllama(s.APIBase, s.ModelName), nil
	case "openai":
		return translator.NewOpenAI(s.APIBase, s.ModelName), nil
	default:
		return nil, fmt.Errorf("unknown api kind %q", s.API)
	}
}

// defaultOutputPath derives the output file from the input file and the
// target language code: document.txt → document_es.txt.
func defaultOutputPath(inputFile, targetCode string) string {
	ext := filepath.Ext(inputFile)
	stem := strings.TrimSuffix(inputFile, ext)
	return stem + "_" + targetCode + ext
}
