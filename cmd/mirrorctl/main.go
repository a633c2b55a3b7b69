package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/docopt/docopt-go"
)

const MirrorctlVersion = "0.1.0"

const usage = `Catalog mirror control.

Reads and edits the product catalog through the synchronization container.
Every invocation loads the catalog from the backend first.

Usage:
    mirrorctl list [--sort=<criterion>] [options]
    mirrorctl show <id> [options]
    mirrorctl comments <id> [options]
    mirrorctl create --name=<name> --image=<url>
        [--count=<count>] [--width=<width>] [--height=<height>] [--weight=<weight>] [options]
    mirrorctl update <id>
        [--name=<name>] [--image=<url>]
        [--count=<count>] [--width=<width>] [--height=<height>] [--weight=<weight>] [options]
    mirrorctl copy <id>
        [--name=<name>] [--image=<url>]
        [--count=<count>] [--width=<width>] [--height=<height>] [--weight=<weight>] [options]
    mirrorctl delete <ids>... [options]
    mirrorctl comment add <id> <text> [options]
    mirrorctl comment delete <id> <comment_id> [options]
    mirrorctl serve [options]
    mirrorctl -h | --help
    mirrorctl --version

Options:
    -h --help                Show this screen.
    --version                Show version.
    --config=<path>          YAML config file. Defaults to $CATALOG_CONFIG.
    --api_url=<api_url>      Catalog backend url, overrides the config.
    --locale=<locale>        Collation locale for name ordering, overrides the config.
    --sort=<criterion>       name or count [default: name].`

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], MirrorctlVersion)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "mirrorctl: %v\n", err)
		os.Exit(1)
	}
}
