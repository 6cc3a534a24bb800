package cmd

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/peakcall/peak"
)

func runMerge(srcPath, destPath string, maxGap int) error {
	ctx := vcontext.Background()
	intervals, err := peak.Load(ctx, srcPath)
	if err != nil {
		return err
	}
	merged, err := peak.Merge(intervals, maxGap)
	if err != nil {
		return err
	}
	log.Printf("merge: %d interval(s) in %s merged into %d", len(intervals), srcPath, len(merged))
	return peak.Write(ctx, destPath, peak.AssignIDs(merged, false), false)
}
