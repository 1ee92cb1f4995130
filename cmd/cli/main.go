package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"plaza-lens/pkg/parser"
	"plaza-lens/pkg/types"
	"plaza-lens/pkg/utils"
)

func main() {
	app := cli.NewApp()
	app.Name = "plaza-lens"
	app.Usage = "Inspect, repair, and edit save containers"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Enable debug logging",
		},
	}
	app.Before = func(cliContext *cli.Context) error {
		if cliContext.Bool("verbose") {
			logrus.SetLevel(logrus.DebugLevel)
		}
		return nil
	}
	app.Commands = []*cli.Command{
		repairCommand,
		coreDataCommand,
		modifyCommand,
		blocksCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "plaza-lens: %s\n", err)
		os.Exit(1)
	}
}

var repairCommand = &cli.Command{
	Name:      "repair",
	Usage:     "Recompute a save container's integrity digest",
	ArgsUsage: "<save-file> [output-file]",
	Action: func(cliContext *cli.Context) error {
		inputPath := cliContext.Args().First()
		if inputPath == "" {
			return fmt.Errorf("missing save file argument")
		}
		container, err := openContainer(inputPath)
		if err != nil {
			return err
		}
		report, err := parser.Repair(container, nil)
		if err != nil {
			return err
		}
		outputPath := cliContext.Args().Get(1)
		if outputPath == "" {
			outputPath = utils.DeriveOutputPath(inputPath, "_repaired")
		}
		if err := os.WriteFile(outputPath, container.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if report.DigestRepaired {
			logrus.Infof("digest rewritten, %d of %d blocks re-protected", report.RepairedCount, report.BlockCount)
		} else {
			logrus.Info("container already consistent, nothing to repair")
		}
		logrus.Infof("saved: %s", outputPath)
		return nil
	},
}

var coreDataCommand = &cli.Command{
	Name:      "coredata",
	Usage:     "Display the trainer-info block",
	ArgsUsage: "<save-file>",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Print machine-readable JSON",
		},
	},
	Action: func(cliContext *cli.Context) error {
		inputPath := cliContext.Args().First()
		if inputPath == "" {
			return fmt.Errorf("missing save file argument")
		}
		container, err := openContainer(inputPath)
		if err != nil {
			return err
		}
		if !container.DigestOK() {
			return fmt.Errorf("%w: stored digest does not match the container, run repair first",
				types.ErrChecksumMismatch)
		}
		out := parser.Inspect(container)
		if out.Trainer == nil {
			return fmt.Errorf("%w: container has no trainer-info block", types.ErrBadFormat)
		}
		if cliContext.Bool("json") {
			return printJSON(out.Trainer)
		}
		printTrainer(out.Trainer)
		return nil
	},
}

var modifyCommand = &cli.Command{
	Name:      "modify",
	Usage:     "Change the trainer name and/or ID, then re-protect the container",
	ArgsUsage: "<save-file> [output-file]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "name",
			Usage: "New trainer name (up to 12 characters)",
		},
		&cli.StringFlag{
			Name:  "id",
			Usage: "New trainer ID (up to 10 digits, leading zeros kept)",
		},
	},
	Action: func(cliContext *cli.Context) error {
		inputPath := cliContext.Args().First()
		if inputPath == "" {
			return fmt.Errorf("missing save file argument")
		}
		mutation := &parser.Mutation{}
		if cliContext.IsSet("name") {
			name := cliContext.String("name")
			mutation.Name = &name
		}
		if cliContext.IsSet("id") {
			id := cliContext.String("id")
			mutation.ID = &id
		}
		if mutation.Name == nil && mutation.ID == nil {
			return fmt.Errorf("nothing to change: pass --name and/or --id")
		}
		container, err := openContainer(inputPath)
		if err != nil {
			return err
		}
		before := parser.Inspect(container)
		report, err := parser.Repair(container, mutation)
		if err != nil {
			return err
		}
		outputPath := cliContext.Args().Get(1)
		if outputPath == "" {
			outputPath = utils.DeriveOutputPath(inputPath, "_modified")
		}
		if err := os.WriteFile(outputPath, container.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		after := parser.Inspect(container)
		if before.Trainer != nil && after.Trainer != nil {
			if mutation.Name != nil {
				logrus.Infof("name changed: %q -> %q", before.Trainer.Name, after.Trainer.Name)
			}
			if mutation.ID != nil {
				logrus.Infof("id changed: %s -> %s", before.Trainer.ID, after.Trainer.ID)
			}
		}
		if report.DigestRepaired {
			logrus.Infof("stale digest rewritten, %d blocks re-protected", report.RepairedCount)
		}
		logrus.Infof("saved: %s", outputPath)
		return nil
	},
}

var blocksCommand = &cli.Command{
	Name:      "blocks",
	Usage:     "List the container's block directory",
	ArgsUsage: "<save-file>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "name",
			Usage: "Show only the block with this record name",
		},
		&cli.BoolFlag{
			Name:  "dump",
			Usage: "Dump raw descriptors for debugging",
		},
	},
	Action: func(cliContext *cli.Context) error {
		inputPath := cliContext.Args().First()
		if inputPath == "" {
			return fmt.Errorf("missing save file argument")
		}
		container, err := openContainer(inputPath)
		if err != nil {
			return err
		}
		if cliContext.Bool("dump") {
			spew.Dump(container.Directory())
			return nil
		}
		out := parser.Inspect(container)
		blocks := out.Blocks
		if name := cliContext.String("name"); name != "" {
			desc, found := container.BlockByName(name)
			if !found {
				return fmt.Errorf("no block named %q", name)
			}
			want := fmt.Sprintf("%08X", desc.Key)
			filtered := make([]types.BlockInfo, 0, 1)
			for _, block := range blocks {
				if block.Key == want {
					filtered = append(filtered, block)
				}
			}
			blocks = filtered
		}
		fmt.Printf("%-10s %-14s %-8s %-8s %s\n", "KEY", "TYPE", "OFFSET", "LENGTH", "VALUE")
		for _, block := range blocks {
			typeName := block.Type
			if block.SubType != "" {
				typeName += "[" + block.SubType + "]"
			}
			value := ""
			if block.Value != nil {
				value = fmt.Sprint(block.Value)
			}
			fmt.Printf("%-10s %-14s %-8d %-8d %s\n", block.Key, typeName, block.Offset, block.Length, value)
		}
		if !out.DigestValid {
			logrus.Warn("stored digest does not match the container payload")
		}
		return nil
	},
}

func openContainer(path string) (*parser.Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}
	logrus.Debugf("loaded %d bytes from %s", len(data), path)
	return parser.Open(data)
}

func printTrainer(trainer *types.TrainerOutput) {
	fmt.Println("=== Core Data ===")
	fmt.Printf("ID:                 %s\n", trainer.ID)
	fmt.Printf("Name:               %s\n", trainer.Name)
	fmt.Printf("Gender:             %s\n", trainer.Gender)
	fmt.Printf("Language ID:        %d\n", trainer.LanguageID)
	fmt.Printf("Rank:               %d (exp %d)\n", trainer.MemberRank, trainer.MemberRankExp)
	fmt.Printf("Birthday:           %d/%d\n", trainer.BirthdayMonth, trainer.BirthdayDay)
	fmt.Printf("Eggs hatched:       %d\n", trainer.EggHatchCount)
	fmt.Printf("Partner walk count: %d\n", trainer.PartnerWalkCount)
	fmt.Printf("Player HP:          %d\n", trainer.PlayerHP)
	fmt.Printf("Icon ID:            %d\n", trainer.PlayerIconID)
	if trainer.NplnUserIDValid {
		fmt.Printf("NPLN user ID:       %s\n", trainer.NplnUserID)
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
