package main

import (
	"context"
	"reviewharvest/cmd/reviewharvest/commands"
	"reviewharvest/lib/telemetry"
)

func main() {
	ctx := context.Background()
	telemetry.SetupFromEnv(ctx, "reviewharvest")
	telemetry.InitSlog(true)
	telemetry.InstrumentPerfStats(ctx)
	commands.ExecuteContext(ctx)
}
