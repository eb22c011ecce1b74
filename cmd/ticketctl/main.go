package main

import (
	"github.com/yamadatarousan/ticket-manager/internal/cli"
	"github.com/yamadatarousan/ticket-manager/internal/common/logtrace"
)

func main() {
	logtrace.InitLogger()
	cli.Execute()
}
