package cmd

import (
	"fmt"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/peakcall/peak"
	"v.io/x/lib/cmdline"
)

func runCall(env *cmdline.Env, bedgraphPath string, opts *peak.Opts) error {
	res, err := peak.Call(vcontext.Background(), bedgraphPath, opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(env.Stdout, res)
	return err
}
