package qf

import "fmt"

// HasStorage reports whether this filter was configured with an
// associated value per entry (Config.BitsOfStoragePerEntry > 0).
func (f *Filter) HasStorage() bool {
	return f.storage != nil
}

// DebugDump prints a textual representation of the filter to stdout,
// in the same bucket/O/C/S/remainder layout teacher tooling uses.
func (f *Filter) DebugDump(full bool) {
	fmt.Printf("\nquotient filter: %d slots (%d q bits, %d r bits), %d entries (load %.3f)\n",
		f.size, f.qBits, f.rBits, f.entries, float64(f.entries)/float64(f.size))

	if !full {
		return
	}

	fmt.Printf("  bucket  O C S remainder->\n")
	skipped := 0
	for i := uint64(0); i < f.size; i++ {
		sd := f.read(i)
		if sd.empty() {
			skipped++
			continue
		}
		if skipped > 0 {
			fmt.Printf("          ...\n")
			skipped = 0
		}
		o, c, s := 0, 0, 0
		if sd.occupied() {
			o = 1
		}
		if sd.continuation() {
			c = 1
		}
		if sd.shifted() {
			s = 1
		}
		fmt.Printf("%8d  %d %d %d %x\n", i, o, c, s, sd.remainder())
	}
	if skipped > 0 {
		fmt.Printf("          ...\n")
	}
}
