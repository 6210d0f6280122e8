package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/aligator/vff"
	logging "github.com/dsoprea/go-logging"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:    "vffdump",
		Usage:   "list and extract the contents of VFF containers",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "print the decoded container geometry",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				scp := logging.NewStaticConfigurationProvider()
				scp.SetLevelName(logging.LevelNameDebug)
				logging.LoadConfiguration(scp)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "list all files and directories",
				ArgsUsage: "<container>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return errors.New("expected exactly one container path")
					}
					return run(afero.NewOsFs(), os.Stdout, c.Args().Get(0), "")
				},
			},
			{
				Name:      "dump",
				Aliases:   []string{"x"},
				Usage:     "list and extract all files into a directory",
				ArgsUsage: "<container> <destination>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return errors.New("expected a container path and a destination")
					}
					return run(afero.NewOsFs(), os.Stdout, c.Args().Get(0), c.Args().Get(1))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// run prints the listing of the container at source and, if destination is
// set, extracts it there. Both paths are resolved in osFs.
func run(osFs afero.Fs, out io.Writer, source, destination string) error {
	f, err := osFs.Open(source)
	if err != nil {
		return err
	}
	defer f.Close()

	container, err := vff.New(f)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", source, err)
	}

	fmt.Fprintln(out, "Directory listing:")
	err = vff.Walk(container.Root(), func(p string, _ *vff.Directory, e vff.Entry) error {
		if e.IsDir() {
			fmt.Fprintf(out, " %s/\n", p)
		} else {
			fmt.Fprintf(out, " %s [0x%x]\n", p, e.Size)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if destination == "" {
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Dumping...")
	return vff.Extract(container.Root(), osFs, destination)
}
