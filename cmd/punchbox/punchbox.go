// Copyright 2024 The Punch Platform Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	uierrs "github.com/cppforlife/go-cli-ui/errors"
	"github.com/punchplatform/punch-punchbox-app/pkg/cmd"
	"github.com/punchplatform/punch-punchbox-app/pkg/external"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	command := cmd.NewDefaultPunchboxCmd()

	err := command.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "punchbox: Error: %s\n", uierrs.NewMultiLineError(err))
		os.Exit(external.ExitCode(err))
	}
}
