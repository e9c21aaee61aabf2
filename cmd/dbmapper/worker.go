package dbmapper

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dbmapper/dbmapper/internal/detectors"
	"github.com/dbmapper/dbmapper/internal/engine"
	"github.com/dbmapper/dbmapper/internal/executor"
)

var flagWorkerPlugins []string

// The worker subcommand is the subprocess side of the process execution
// strategy: it reads one JSON detection request per line on stdin and
// writes one JSON response per line on stdout until stdin closes. It is
// hidden because it is only ever spawned by a scanning parent process.
func init() {
	cmd := &cobra.Command{
		Use:    "worker",
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWorker(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringSliceVar(&flagWorkerPlugins, "plugins", nil, "plugin detectors to enable")
	rootCmd.AddCommand(cmd)
}

func runWorker(in io.Reader, out io.Writer) error {
	dets, err := detectors.WithPlugins(flagWorkerPlugins)
	if err != nil {
		return err
	}

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	enc := json.NewEncoder(out)

	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var req executor.WorkerRequest
		resp := executor.WorkerResponse{}
		if err := json.Unmarshal(line, &req); err != nil {
			resp.Err = fmt.Sprintf("malformed request: %v", err)
		} else {
			resp.Path = req.Path
			resp.Findings = engine.DetectFile(req.Path, req.Rel, dets)
		}
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
	return sc.Err()
}
