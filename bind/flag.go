// Copyright 2026 Sauce Labs Inc., all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bind registers pflag flags for the randomized configuration types.
package bind

import (
	"github.com/mmatczuk/anyflag"
	"github.com/saucelabs/randomized"
	"github.com/saucelabs/randomized/log"
	"github.com/saucelabs/randomized/runner"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func ConfigFile(fs *pflag.FlagSet, configFile *string) {
	fs.StringVarP(configFile,
		"config-file", "c", *configFile, "<path>"+
			"Configuration file to load options from. "+
			"The supported formats are: JSON, YAML, TOML, HCL, and Java properties. "+
			"The file format is determined by the file extension, if not specified the default format is YAML. "+
			"The following precedence order of configuration sources is used: command flags, environment variables, config file, default values. ")
}

// parseSeedString validates a seed and returns it in canonical form.
func parseSeedString(val string) (string, error) {
	s, err := randomized.ParseSeed(val)
	if err != nil {
		return "", err
	}
	return randomized.FormatSeed(s), nil
}

func Seed(fs *pflag.FlagSet, seed *string) {
	fs.VarP(anyflag.NewValue[string](*seed, seed, parseSeedString),
		"seed", "s", "<hex>"+
			"Master seed of the run in hexadecimal, with or without the 0x prefix. "+
			"If empty, a fresh seed is used and printed on failure. ")
}

func RunnerConfig(fs *pflag.FlagSet, cfg *runner.Config) {
	Seed(fs, &cfg.Seed)

	fs.StringVar(&cfg.Suite,
		"suite", cfg.Suite, "<name>"+
			"Name of the run, used in logs and in the randomness context. ")
	fs.BoolVar(&cfg.LeakCheck,
		"leak-check", cfg.LeakCheck,
		"Fail the run if threads that used randomness are still running when it ends.")
	fs.DurationVar(&cfg.LeakTimeout,
		"leak-timeout", cfg.LeakTimeout,
		"How long the leak check waits for threads to exit.")
}

func LogConfig(fs *pflag.FlagSet, cfg *log.Config) {
	logLevel := []log.Level{
		log.ErrorLevel,
		log.WarnLevel,
		log.InfoLevel,
		log.DebugLevel,
	}
	fs.Var(anyflag.NewValue[log.Level](cfg.Level, &cfg.Level, anyflag.EnumParser[log.Level](logLevel...)),
		"log-level", "<error|warn|info|debug>"+
			"Log level. ")

	logFormat := []log.Format{
		log.TextFormat,
		log.JSONFormat,
	}
	fs.Var(anyflag.NewValue[log.Format](cfg.Format, &cfg.Format, anyflag.EnumParser[log.Format](logFormat...)),
		"log-format", "<text|json>"+
			"Log format. ")
}

func MarkFlagRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}
