// dyn - dynamic value CLI tool
//
// Usage:
//
//	dyn print [file]   Print a JSON-encoded dynamic value in canonical text
//	dyn hash [file]    Print the canonical content hash
//	dyn dump [file]    Dump the decoded structure verbosely
//	dyn json [file]    Re-emit normalized marker JSON
//
// If no file is given, reads from stdin.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/skematic/dyn/dynamic"
)

var (
	log = logrus.New()

	verbose bool

	rootCmd = &cobra.Command{
		Use:   "dyn",
		Short: "Inspect JSON-encoded dynamic values",
		Long: `dyn reads dynamic values in their $dyn-marker JSON encoding and
prints, hashes or dumps them. Input comes from a file argument or stdin.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetLevel(logrus.WarnLevel)
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	printCmd = &cobra.Command{
		Use:   "print [file]",
		Short: "Print a dynamic value in canonical text form",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := readValue(args)
			if err != nil {
				return err
			}
			fmt.Println(v.String())
			return nil
		},
	}

	hashCmd = &cobra.Command{
		Use:   "hash [file]",
		Short: "Print the canonical content hash of a dynamic value",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := readValue(args)
			if err != nil {
				return err
			}
			fmt.Println(dynamic.CanonicalHash(v))
			return nil
		},
	}

	dumpCmd = &cobra.Command{
		Use:   "dump [file]",
		Short: "Dump the decoded value structure verbosely",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := readValue(args)
			if err != nil {
				return err
			}
			spew.Dump(v)
			return nil
		},
	}

	jsonCmd = &cobra.Command{
		Use:   "json [file]",
		Short: "Re-emit a dynamic value as normalized marker JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := readValue(args)
			if err != nil {
				return err
			}
			out, err := dynamic.ToJSON(v)
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
)

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(jsonCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// readValue loads the marker JSON input from the optional file argument or
// stdin and parses it into a dynamic value.
func readValue(args []string) (*dynamic.Value, error) {
	var in io.Reader = os.Stdin
	name := "stdin"
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
		name = args[0]
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	log.WithField("source", name).WithField("bytes", len(data)).Debug("read input")

	return dynamic.FromJSON(data)
}
