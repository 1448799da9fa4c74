package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yamitzky/biffkit-go/biff"
	"github.com/yamitzky/biffkit-go/codec"
	"github.com/yamitzky/biffkit-go/container"
)

func (a *app) newRecordsCommand() *cobra.Command {
	var unnumbered bool
	cmd := &cobra.Command{
		Use:   "records <file>",
		Short: "Dump every BIFF record in char & hex format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := a.options(args[0])
			if err != nil {
				return err
			}
			return biff.Dump(args[0], a.stdout, unnumbered || a.config.Dump.Unnumbered, options)
		},
	}
	cmd.Flags().BoolVarP(&unnumbered, "unnumbered", "u", false, "omit offsets (for meaningful diffs)")
	return cmd
}

func (a *app) newCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count <file>",
		Short: "Count the BIFF records of each type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := a.options(args[0])
			if err != nil {
				return err
			}
			return biff.CountRecords(args[0], a.stdout, options)
		},
	}
}

func (a *app) newFormatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "format <file>",
		Short: "Print the detected file format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			format, err := biff.InspectFormat(args[0], data)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, biff.FileFormatDescriptions[format])
			return err
		},
	}
}

// openContainer opens filename as a compound file or zip package.
func (a *app) openContainer(filename string) (container.Container, error) {
	options, err := a.options(filename)
	if err != nil {
		return nil, err
	}
	c, err := biff.OpenContainer(options.FileContents, options)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, codec.Errorf(codec.ErrMalformedContainer, "%s: not a compound file or zip package", filename)
	}
	return c, nil
}

func (a *app) newLsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <file>",
		Short: "List the entries of a compound file or zip package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openContainer(args[0])
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.stdout, 0, 8, 2, ' ', tabwriter.AlignRight)
			for _, e := range c.Entries() {
				fmt.Fprintf(tw, "%s\t%d\t %s\n", e.Kind, e.Size, e.Path)
			}
			return tw.Flush()
		},
	}
}

func (a *app) newCatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <file> <entry>",
		Short: "Write the bytes of a container entry to standard output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openContainer(args[0])
			if err != nil {
				return err
			}
			data, err := c.Content(args[1])
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(data)
			return err
		},
	}
}

func (a *app) newEscherCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "escher <file>",
		Short: "Print the drawing records of each substream as trees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := a.options(args[0])
			if err != nil {
				return err
			}
			wb, err := biff.OpenWorkbook(args[0], options)
			if err != nil {
				return err
			}
			substreams := append([]*biff.Substream{wb.Globals}, wb.Sheets...)
			for i, s := range substreams {
				aggs := s.DrawingAggregates()
				if len(aggs) == 0 {
					continue
				}
				name := s.Name
				switch {
				case i == 0:
					name = "Globals"
				case name == "":
					name = fmt.Sprintf("substream at %d", s.Offset())
				}
				fmt.Fprintf(a.stdout, "== %s\n", name)
				for _, agg := range aggs {
					if err := agg.Dump(a.stdout); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
}

func (a *app) newFormulasCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formulas <file>",
		Short: "List formula cells with their cached results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := a.options(args[0])
			if err != nil {
				return err
			}
			wb, err := biff.OpenWorkbook(args[0], options)
			if err != nil {
				return err
			}
			for _, s := range wb.Sheets {
				err := s.VisitContainedRecords(func(r biff.Record) error {
					f, ok := r.(*biff.FormulaRecord)
					if !ok {
						return nil
					}
					_, err := fmt.Fprintf(a.stdout, "%s!%s %s\n", s.Name, f.CellName(), f.CachedText())
					return err
				})
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) newResaveCommand() *cobra.Command {
	var newPassword string
	var removePassword bool
	cmd := &cobra.Command{
		Use:   "resave <file> <output>",
		Short: "Load a workbook and save it again",
		Long: `Load a workbook and save it again. Records that were not changed are
written back byte for byte, so the output of a plain resave equals the input.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if removePassword && newPassword != "" {
				return usageError{fmt.Errorf("--new-password and --remove-password are mutually exclusive")}
			}
			options, err := a.options(args[0])
			if err != nil {
				return err
			}
			wb, err := biff.OpenWorkbook(args[0], options)
			if err != nil {
				return err
			}
			switch {
			case removePassword:
				wb.RemoveEncryption()
			case newPassword != "":
				if err := wb.SetPassword(newPassword); err != nil {
					return err
				}
			}
			return wb.SaveFile(args[1])
		},
	}
	cmd.Flags().StringVar(&newPassword, "new-password", "", "encrypt the output with this password")
	cmd.Flags().BoolVar(&removePassword, "remove-password", false, "write the output unencrypted")
	return cmd
}

func (a *app) newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.config.Write(a.stdout)
		},
	}
}

func (a *app) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(a.stdout, "biffdump %s\n", version)
			return err
		},
	}
}
