package main

import (
	"fmt"

	"github.com/quotientfilter/qf"
	"github.com/quotientfilter/qf/internal/hashutil"
)

func main() {
	fmt.Printf("Example of analyzing size requirements:\n")
	conf := qf.Config{ExpectedEntries: 1000000000}
	fmt.Printf("A billion entry quotient filter would be loaded at %f percent...\n",
		conf.ExpectedLoading(),
	)
	conf.ExplainIndent("  ")

	fmt.Printf("\nExample of loading and using a small quotient filter:\n")
	data := []string{
		"red", "yellow", "orange", "blue",
	}
	// Size the filter ahead of time when you know roughly how many
	// entries it will hold; NewWithConfig picks a small default size
	// otherwise.
	f, err := qf.NewWithConfig(qf.Config{
		ExpectedEntries: uint64(len(data)),
		BitPacked:       true,
	})
	if err != nil {
		panic(err)
	}

	for _, color := range data {
		f.Insert(hashutil.Murmur64([]byte(color)))
	}

	for _, color := range []string{
		"red",
		"orange",
		"yellow",
		"green",
		"blue",
		"indigo",
		"violet",
	} {
		fmt.Printf("%s: %t\n", color, f.MayContain(hashutil.Murmur64([]byte(color))))
	}

	// Dump the whole quotient filter in textual form.
	f.DebugDump(true)
	fmt.Printf("estimated false positive rate: %.6f\n", f.FalsePositiveRate())
}
