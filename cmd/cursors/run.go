/*
 * Copyright 2026 The Yorkie Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/yorkie-team/cursors/internal/log"
	"github.com/yorkie-team/cursors/internal/scenario"
)

var flagScenarioPath string

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run --scenario [path]",
		Short: "Replay a scenario and print the cursors drawn by every peer",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := viper.GetString("output")
			if err := validateOutput(output); err != nil {
				return err
			}

			conf := scenario.NewConfig()
			if flagScenarioPath != "" {
				parsed, err := scenario.NewConfigFromFile(flagScenarioPath)
				if err != nil {
					return err
				}
				conf = parsed
			}

			runner, err := scenario.NewRunner(conf, log.New("scenario", log.NewField("doc", conf.Document.Key)))
			if err != nil {
				return err
			}
			defer runner.Close()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			report, err := runner.Run(ctx)
			if err != nil {
				return err
			}

			return printReport(cmd, output, report)
		},
	}
}

func printReport(cmd *cobra.Command, output string, report *scenario.Report) error {
	switch output {
	case "":
		tw := table.NewWriter()
		tw.Style().Options.DrawBorder = false
		tw.Style().Options.SeparateColumns = false
		tw.Style().Options.SeparateFooter = false
		tw.Style().Options.SeparateHeader = false
		tw.Style().Options.SeparateRows = false
		tw.AppendHeader(table.Row{
			"PEER",
			"CONTENT",
			"LIVE",
			"FOCUSED",
			"CURSOR",
			"OVERLAYS",
		})
		for _, peer := range report.Peers {
			tw.AppendRow(table.Row{
				peer.Name,
				fmt.Sprintf("%q", peer.Content),
				peer.Live,
				peer.Focused,
				cursorString(peer.Cursor),
				overlaysString(peer.Overlays),
			})
		}
		tw.AppendFooter(table.Row{
			"",
			fmt.Sprintf("recomputes %.0f", report.Metrics.Recomputes),
			fmt.Sprintf("remaps %.0f", report.Metrics.Remaps),
			fmt.Sprintf("publishes %.0f", report.Metrics.Publishes),
		})
		cmd.Printf("%s\n", tw.Render())
	case "json":
		jsonOutput, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		cmd.Println(string(jsonOutput))
	case "yaml":
		yamlOutput, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("marshal YAML: %w", err)
		}
		cmd.Println(string(yamlOutput))
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}

	return nil
}

func cursorString(cursor *scenario.Cursor) string {
	if cursor == nil {
		return "-"
	}
	if cursor.Anchor == cursor.Head {
		return fmt.Sprintf("%d", cursor.Head)
	}
	return fmt.Sprintf("%d..%d", cursor.Anchor, cursor.Head)
}

func overlaysString(overlays []*scenario.Overlay) string {
	if len(overlays) == 0 {
		return "-"
	}

	parts := make([]string, 0, len(overlays))
	for _, o := range overlays {
		switch o.Type {
		case scenario.OverlayCaret:
			parts = append(parts, fmt.Sprintf("caret(%s)@%d", o.Owner, o.From))
		default:
			parts = append(parts, fmt.Sprintf("highlight[%d,%d)", o.From, o.To))
		}
	}
	return strings.Join(parts, " ")
}

func init() {
	cmd := newRunCmd()
	cmd.Flags().StringVarP(
		&flagScenarioPath,
		"scenario",
		"s",
		"",
		"Path of the scenario file; a single idle peer is used when omitted",
	)
	rootCmd.AddCommand(cmd)
}
