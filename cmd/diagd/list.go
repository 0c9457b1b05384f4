// cmd/diagd/list.go
package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tamzrod/diag-registry/internal/abi"
	"github.com/tamzrod/diag-registry/internal/diag"
	"github.com/tamzrod/diag-registry/internal/diagdata"
)

var listCmd = &cobra.Command{
	Use:   "list <config.yaml>",
	Short: "Print every registered source and its current value",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args[0])
	if err != nil {
		return err
	}

	a, err := buildApp(cfg, time.Now())
	if err != nil {
		return err
	}
	defer a.close()

	return writeList(cmd, abi.New(a.registry))
}

// writeList prints one row per source through the result-code surface.
// A source whose GET fails is shown with its result code and skipped.
func writeList(cmd *cobra.Command, svc *abi.Service) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tVALUE")

	var ids []diag.ID
	var count int
	rc := svc.EnumSources(func(src *diag.Source, _ any) {
		ids = append(ids, src.ID)
	}, &count, nil, nil)
	if rc != diag.CodeOK {
		return fmt.Errorf("enumerate sources: %w", diag.Error(rc))
	}

	buf := make([]byte, diag.IntSize)
	for _, id := range ids {
		var src *diag.Source
		if rc := svc.GetSource(uint16(id), &src, nil); rc != diag.CodeOK {
			return fmt.Errorf("source %d: %w", id, diag.Error(rc))
		}

		data := &abi.CmdData{Size: abi.CmdDataSize, ID: id, Buf: buf}
		if rc := svc.ServiceCmd(int(diag.CmdGet), data, nil); rc != diag.CodeOK {
			fmt.Fprintf(tw, "%d\t%s\terror %d\n", id, src.Name, rc)
			continue
		}
		v, err := diagdata.DecodeInt(buf[:data.Written])
		if err != nil {
			fmt.Fprintf(tw, "%d\t%s\t%v\n", id, src.Name, err)
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\n", id, src.Name, v)
	}

	fmt.Fprintf(tw, "\n%d sources\n", count)
	return tw.Flush()
}
