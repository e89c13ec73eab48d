package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/quotientfilter/qf"
	"github.com/quotientfilter/qf/bitqf"
	"github.com/quotientfilter/qf/internal/hashutil"

	bloomfilter "github.com/bits-and-blooms/bloom/v3"
)

func readKeys(c *cli.Context) ([]string, error) {
	var reader io.Reader
	if c.IsSet("input") {
		f, err := os.Open(c.String("input"))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		reader = f
	} else {
		reader = os.Stdin
	}

	var keys []string
	rdr := bufio.NewScanner(reader)
	for rdr.Scan() {
		s := strings.TrimSpace(rdr.Text())
		if s != "" {
			keys = append(keys, s)
		}
	}
	return keys, rdr.Err()
}

func buildFilter(keys []string, rbits uint) (*qf.Filter, error) {
	f, err := qf.NewWithConfig(qf.Config{RBits: rbits, ExpectedEntries: uint64(len(keys))})
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		f.Insert(hashutil.Murmur64([]byte(k)))
	}
	return f, nil
}

func main() {
	app := &cli.App{
		Name:  "qfctl",
		Usage: "build and inspect in-memory quotient filters",
		Commands: []*cli.Command{
			{
				Name:  "build",
				Usage: "build a quotient filter from a list of keys and report its stats",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"in", "i"}, Usage: "file to read keys from (default stdin)"},
					&cli.UintFlag{Name: "bits-remainder", Aliases: []string{"r"}, Value: 8, Usage: "remainder bits per slot"},
				},
				Action: func(c *cli.Context) error {
					keys, err := readKeys(c)
					if err != nil {
						return fmt.Errorf("build: %w", err)
					}
					start := time.Now()
					f, err := buildFilter(keys, c.Uint("bits-remainder"))
					if err != nil {
						return fmt.Errorf("build: %w", err)
					}
					log.Printf("inserted %d keys in %s", len(keys), time.Since(start))
					f.DebugDump(false)
					fmt.Printf("estimated false positive rate: %.6f\n", f.FalsePositiveRate())
					return nil
				},
			},
			{
				Name:  "check",
				Usage: "build a quotient filter and check membership of queried keys",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"in", "i"}, Usage: "file to read keys from (default stdin)"},
					&cli.UintFlag{Name: "bits-remainder", Aliases: []string{"r"}, Value: 8, Usage: "remainder bits per slot"},
					&cli.StringSliceFlag{Name: "query", Aliases: []string{"q"}, Usage: "key to look up (repeatable)"},
				},
				Action: func(c *cli.Context) error {
					keys, err := readKeys(c)
					if err != nil {
						return fmt.Errorf("check: %w", err)
					}
					f, err := buildFilter(keys, c.Uint("bits-remainder"))
					if err != nil {
						return fmt.Errorf("check: %w", err)
					}
					for _, q := range c.StringSlice("query") {
						found := f.MayContain(hashutil.Murmur64([]byte(q)))
						fmt.Printf("%q: %t\n", q, found)
					}
					return nil
				},
			},
			{
				Name:  "compare",
				Usage: "build a quotient filter and a Bloom filter from the same keys and compare them",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"in", "i"}, Usage: "file to read keys from (default stdin)"},
					&cli.UintFlag{Name: "bits-remainder", Aliases: []string{"r"}, Value: 8, Usage: "remainder bits per slot"},
					&cli.Float64Flag{Name: "bloom-fpr", Value: 0.01, Usage: "target false positive rate for the Bloom filter"},
				},
				Action: func(c *cli.Context) error {
					keys, err := readKeys(c)
					if err != nil {
						return fmt.Errorf("compare: %w", err)
					}
					f, err := buildFilter(keys, c.Uint("bits-remainder"))
					if err != nil {
						return fmt.Errorf("compare: %w", err)
					}
					bf := bloomfilter.NewWithEstimates(uint(len(keys)), c.Float64("bloom-fpr"))
					for _, k := range keys {
						bf.Add([]byte(k))
					}

					sizing := qf.Config{RBits: c.Uint("bits-remainder"), ExpectedEntries: uint64(len(keys))}
					qfBytes := sizing.BytesRequired()
					fmt.Printf("%d keys\n", len(keys))
					fmt.Printf("quotient filter: %d bytes, estimated fpr %.6f\n", qfBytes, f.FalsePositiveRate())
					fmt.Printf("bloom filter:    %d bytes, target fpr %.6f\n", bf.Cap()/8, c.Float64("bloom-fpr"))
					return nil
				},
			},
			{
				Name:  "explain",
				Usage: "print capacity planning details for a given expected load",
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "expected-entries", Aliases: []string{"n"}, Required: true},
					&cli.UintFlag{Name: "bits-remainder", Aliases: []string{"r"}, Value: 8},
					&cli.UintFlag{Name: "bits-storage", Aliases: []string{"s"}, Value: 0, Usage: "bits of associated value per entry"},
				},
				Action: func(c *cli.Context) error {
					cfg := qf.Config{
						RBits:                 c.Uint("bits-remainder"),
						BitsOfStoragePerEntry: c.Uint("bits-storage"),
						ExpectedEntries:       c.Uint64("expected-entries"),
					}
					cfg.Explain()
					return nil
				},
			},
			{
				Name:  "bitqf-build",
				Usage: "like build, but using the bitset-backed alternate representation",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"in", "i"}, Usage: "file to read keys from (default stdin)"},
					&cli.UintFlag{Name: "bits-remainder", Aliases: []string{"r"}, Value: 8, Usage: "remainder bits per slot"},
				},
				Action: func(c *cli.Context) error {
					keys, err := readKeys(c)
					if err != nil {
						return fmt.Errorf("bitqf-build: %w", err)
					}
					ix, err := bitqf.NewWithConfig(bitqf.Config{RBits: c.Uint("bits-remainder"), ExpectedEntries: uint64(len(keys))})
					if err != nil {
						return fmt.Errorf("bitqf-build: %w", err)
					}
					for _, k := range keys {
						ix.Insert(hashutil.Murmur64([]byte(k)))
					}
					fmt.Printf("bitqf: %d slots (%d q bits, %d r bits), %d entries\n",
						uint64(1)<<ix.QBits(), ix.QBits(), ix.RBits(), ix.Len())
					fmt.Printf("estimated false positive rate: %.6f\n", ix.FalsePositiveRate())
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
