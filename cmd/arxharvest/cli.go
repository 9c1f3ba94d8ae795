package main

import (
	"context"
	"io"

	"github.com/fwojciec/arxharvest"
	"github.com/fwojciec/arxharvest/harvest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Harvester *harvest.Harvester
	Archive   arxharvest.PageArchive
}

// HarvestCmd handles the harvest operation.
type HarvestCmd struct {
	URL string
	Out string
}
