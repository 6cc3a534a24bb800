package cmd

import (
	"fmt"
	"log"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/peakcall/peak"
	"v.io/x/lib/cmdline"
)

func newCmdCall() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "call",
		Short:    "Call peaks on a bedgraph",
		ArgsName: "bedgraph",
		ArgsLong: `bedgraph is the input path, or a glob pattern matching exactly one file.`,
	}
	opts := peak.DefaultOpts
	cmd.Flags.Float64Var(&opts.Threshold, "threshold", peak.DefaultOpts.Threshold, "Minimum bedgraph score (inclusive) of a peak position")
	cmd.Flags.IntVar(&opts.MinLength, "min-length", peak.DefaultOpts.MinLength, "Minimum length (inclusive) of an above-threshold run")
	cmd.Flags.IntVar(&opts.MaxLength, "max-length", peak.DefaultOpts.MaxLength, "Maximum length (inclusive) of an above-threshold run; 0 = unbounded")
	cmd.Flags.IntVar(&opts.InterPeakDistance, "inter-peak-distance", peak.DefaultOpts.InterPeakDistance, "Merge peaks separated by at most this many bases")
	cmd.Flags.BoolVar(&opts.GenerateID, "id", peak.DefaultOpts.GenerateID, "Write id1..idN as column 4, shifting the score to column 5")
	cmd.Flags.StringVar(&opts.OutputPath, "out", "", "Output BED path; a .gz suffix selects bgzip. Defaults to the input path with .bg replaced by _peaks.bed")
	cmd.Flags.StringVar(&opts.Region, "region", "", "Restrict peak calling to the specified region. Format as <contig ID>:<1-based first pos>-<last pos>, <contig ID>:<1-based pos>, or just <contig ID>")
	cmd.Flags.StringVar(&opts.ExcludeBEDPath, "exclude", "", "Sorted BED of regions to ignore (e.g. a blacklist)")
	cmd.Flags.StringVar(&opts.ChromOrderPath, "chrom-order", "", ".fai or chrom.sizes file fixing the output chromosome order; default is lexicographic")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("call takes one bedgraph argument, but got %v", argv)
		}
		return runCall(env, argv[0], &opts)
	})
	return cmd
}

func newCmdMerge() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "merge",
		Short:    "Merge nearby intervals of a sorted bedgraph, summing scores",
		ArgsName: "srcpath destpath",
	}
	maxGapFlag := cmd.Flags.Int("d", 0, "Merge intervals separated by at most this many bases; 0 merges touching intervals only")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("merge takes srcpath destpath, but found %v", argv)
		}
		return runMerge(argv[0], argv[1], *maxGapFlag)
	})
	return cmd
}

func newCmdRoot() *cmdline.Command {
	return &cmdline.Command{
		Name:     "bio-peaks",
		Short:    "Peak calling on bedgraph signal tracks",
		LookPath: false,
		Children: []*cmdline.Command{
			newCmdCall(),
			newCmdMerge(),
		},
	}
}

// Run is the bio-peaks entry point.
func Run() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newCmdRoot())
}
