// tether-file-host - Document host backed by a snapshot file
//
// Serves a tether document file over the document host protocol, so that the
// host code path can be used without a design tool. Every successful binding
// is written back to the file.
//
// Build:
//   go build -o tether-file-host ./cmd/tether-file-host
//
// Usage:
//   export TETHER_FILE_HOST_DOCUMENT=design.json.xz
//   tether analyze --host ./tether-file-host
//
// Author: Tether Contributors
// License: MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tether/internal/plugin/filehost"
	pkgplugin "github.com/jmylchreest/tether/pkg/plugin"
)

func main() {
	// Answer the probe without a document.
	if len(os.Args) > 1 && os.Args[1] == pkgplugin.InfoFlag {
		_ = json.NewEncoder(os.Stdout).Encode(filehost.Metadata())
		return
	}

	// go-plugin forwards stderr to tether's logger as structured lines.
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "tether-file-host",
		Level:      hclog.Info,
		Output:     os.Stderr,
		JSONFormat: true,
	})

	path := os.Getenv(filehost.DocumentEnv)
	if path == "" {
		fmt.Fprintf(os.Stderr, "%s is not set\n", filehost.DocumentEnv)
		os.Exit(1)
	}

	host, err := filehost.New(context.Background(), path, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", path, err)
		os.Exit(1)
	}

	pkgplugin.Serve(host)
}
