package logic

import (
	"fmt"
	"text/tabwriter"
)

// Algorithms prints the registered ciphers and digests.
func (r *Runner) Algorithms() error {
	tw := tabwriter.NewWriter(r.Out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "CIPHER\tMODE\tKEY\tIV\tBLOCK")

	for _, c := range r.Registry.Ciphers() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", c.Name, c.Mode, c.KeySize, c.IVSize, c.BlockSize)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "DIGEST\tSIZE")

	for _, d := range r.Registry.Digests() {
		fmt.Fprintf(tw, "%s\t%d\n", d.Name, d.Size)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing algorithm list: %w", err)
	}

	return nil
}
