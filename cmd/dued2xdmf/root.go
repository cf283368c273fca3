/*
 * root.go, part of dued.
 *
 * Copyright 2026 The dued authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rmera/dued"
	"github.com/rmera/dued/duedplot"
	"github.com/rmera/dued/h5"
	"github.com/rmera/dued/xdmf"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	//errNoFolder is returned, after printing the help, when no folder is given.
	errNoFolder = errors.New("no simulation folder given")
	//errLogged marks the errors already reported through the logger.
	errLogged = errors.New("error logged")
)

//newRootCmd builds the command. Each call has its own flag set and configuration.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "dued2xdmf [flags] <simulation folder>",
		Short: "Convert DUED gnuplot output to HDF5 + XDMF",
		Long: `dued2xdmf reads the gzipped gnuplot frames in <folder>/out/gpl, assembles
them into a single time series and writes <name>.h5 and <name>.xdmf, readable
by VisIt. <name> defaults to the base name of the folder.

Every flag can also be set with a DUED_ environment variable
(DUED_UNITS=cgs, DUED_NO_TRIM=true...) or in a configuration file.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return errNoFolder
			}
			if err := loadConfig(v); err != nil {
				return err
			}
			log, err := newLogger(stderr, v.GetString("log-level"))
			if err != nil {
				return err
			}
			if err := convert(cmd.Context(), v, log, args[0]); err != nil {
				log.Error().Err(err).Str("folder", args[0]).Msg("Conversion failed")
				return errors.Mark(err, errLogged)
			}
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	f := cmd.Flags()
	f.BoolP("nothreading", "n", false, "disable parallel parsing")
	f.StringP("units", "u", string(dued.HEDP), "units of the output, hedp or cgs")
	f.BoolP("flashcomp", "c", false, "swap and negate the x/y axes, to compare with FLASH")
	f.IntP("workers", "w", 0, "number of parsing workers, 0 for one per CPU")
	f.Bool("no-trim", false, "keep the ghost cells at the grid borders")
	f.Duration("timeout", dued.DefaultFrameTimeout, "time allowed to read each frame, 0 for no limit")
	f.StringP("output", "o", "", "output name, without extension (default: the folder name)")
	f.Int("compression", 0, "gzip level of the HDF5 datasets, 0 to disable")
	f.Bool("plot", false, "also plot the frame times to <name>_time.png")
	f.String("config", "", "configuration file (yaml, json or toml)")
	f.String("log-level", "info", "log level: trace, debug, info, warn or error")
	v.BindPFlags(f)
	v.SetEnvPrefix("DUED")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return cmd
}

//loadConfig reads the configuration file, if one was given.
func loadConfig(v *viper.Viper) error {
	cfg := v.GetString("config")
	if cfg == "" {
		return nil
	}
	v.SetConfigFile(cfg)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "can't read configuration file %s", cfg)
	}
	return nil
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), errors.Wrapf(err, "bad log level %q", level)
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(cw).Level(lvl).With().Timestamp().Logger(), nil
}

//options builds the conversion options from the configuration.
func options(v *viper.Viper, log zerolog.Logger) dued.Options {
	opts := dued.DefaultOptions()
	opts.Units = dued.Units(v.GetString("units"))
	opts.FlashComp = v.GetBool("flashcomp")
	opts.Parallel = !v.GetBool("nothreading")
	opts.Workers = v.GetInt("workers")
	opts.TrimGhosts = !v.GetBool("no-trim")
	opts.FrameTimeout = v.GetDuration("timeout")
	opts.Logger = log
	return opts
}

//convert runs the whole conversion of folder. On error, none of the
//output files is left behind.
func convert(ctx context.Context, v *viper.Viper, log zerolog.Logger, folder string) (err error) {
	S, err := dued.Open(ctx, folder, options(v, log))
	if err != nil {
		return err
	}
	out := v.GetString("output")
	if out == "" {
		out = S.Name
	}
	h5name, xname, pname := out+".h5", out+".xdmf", out+"_time.png"
	var written []string
	defer func() {
		if err != nil {
			for _, w := range written {
				os.Remove(w)
			}
		}
	}()
	l := h5.DefaultLayout()
	l.Variables = S.Options.Variables
	l.Columns = S.Options.Columns
	l.Compression = v.GetInt("compression")
	if err = h5.Write(h5name, S.Data, S.Time, l, S.Metadata(time.Now())); err != nil {
		return err
	}
	written = append(written, h5name)
	//the container sits next to the description.
	if err = xdmf.WriteFile(xname, filepath.Base(out), xdmf.Describe(S)); err != nil {
		return err
	}
	written = append(written, xname)
	if v.GetBool("plot") {
		if err = duedplot.TimePlot(S.Time, string(S.Options.Units), pname); err != nil {
			return err
		}
		log.Info().Str("file", pname).Msg("Time plot saved")
	}
	log.Info().Str("file", xname).Str("container", h5name).Msg("XDMF file successfully created")
	return nil
}
