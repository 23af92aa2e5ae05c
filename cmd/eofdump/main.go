// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Command eofdump decodes, validates, and round-trips EOF v1 containers
// given as hex on the command line or read line-by-line from stdin.
package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/urfave/cli/v2"

	"github.com/go-eof/eofcodec/eof"
)

var (
	terminatorFlag = &cli.BoolFlag{
		Name:  "enforce-terminator",
		Usage: "require every code section to end in a terminating instruction",
	}
	logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
)

func main() {
	app := &cli.App{
		Name:  "eofdump",
		Usage: "inspect EOF v1 bytecode containers",
		Commands: []*cli.Command{
			decodeCommand,
			validateCommand,
			roundtripCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		level.Error(logger).Log("msg", "command failed", "err", err)
		os.Exit(1)
	}
}

var decodeCommand = &cli.Command{
	Name:      "decode",
	Usage:     "decode one or more containers and print their structure",
	ArgsUsage: "[hex...]",
	Flags:     []cli.Flag{terminatorFlag},
	Action: func(ctx *cli.Context) error {
		return forEachInput(ctx, func(raw []byte) error {
			c, err := eof.Decode(raw, ctx.Bool("enforce-terminator"))
			if err != nil {
				level.Error(logger).Log("msg", "decode failed", "err", err)
				return nil
			}
			level.Info(logger).Log(
				"msg", "decoded",
				"size", c.Size(),
				"code_sections", c.NumCodeSections(),
				"data_size", len(c.Data()),
			)
			return nil
		})
	},
}

var validateCommand = &cli.Command{
	Name:      "validate",
	Usage:     "report OK or the first validation error for each container",
	ArgsUsage: "[hex...]",
	Flags:     []cli.Flag{terminatorFlag},
	Action: func(ctx *cli.Context) error {
		return forEachInput(ctx, func(raw []byte) error {
			if _, err := eof.Decode(raw, ctx.Bool("enforce-terminator")); err != nil {
				fmt.Printf("ERR: %v\n", err)
				return nil
			}
			fmt.Println("OK")
			return nil
		})
	},
}

var roundtripCommand = &cli.Command{
	Name:      "roundtrip",
	Usage:     "decode then re-serialize, failing if the bytes don't match",
	ArgsUsage: "[hex...]",
	Flags:     []cli.Flag{terminatorFlag},
	Action: func(ctx *cli.Context) error {
		return forEachInput(ctx, func(raw []byte) error {
			c, err := eof.Decode(raw, ctx.Bool("enforce-terminator"))
			if err != nil {
				fmt.Printf("ERR: %v\n", err)
				return nil
			}
			out := c.Serialize()
			if !bytes.Equal(out, raw) {
				return fmt.Errorf("round-trip mismatch: got %x, want %x", out, raw)
			}
			fmt.Println("OK")
			return nil
		})
	},
}

// forEachInput decodes every hex argument on the command line, or, if none
// are given, reads one hex-encoded container per line from stdin.
func forEachInput(ctx *cli.Context, fn func([]byte) error) error {
	if args := ctx.Args().Slice(); len(args) > 0 {
		for _, arg := range args {
			raw, err := decodeArg(arg)
			if err != nil {
				return err
			}
			if err := fn(raw); err != nil {
				return err
			}
		}
		return nil
	}
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1024), 10*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		raw, err := decodeArg(line)
		if err != nil {
			return err
		}
		if err := fn(raw); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func decodeArg(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("bad hex input %q: %w", s, err)
	}
	return b, nil
}
