package rubrica

import (
	"go.uber.org/zap"

	"github.com/jmcrae/rubrica/anchor"
	"github.com/jmcrae/rubrica/mutate"
	"github.com/jmcrae/rubrica/place"
)

// annotateOptions holds configuration for one annotation run
type annotateOptions struct {
	// Allowed pages, in search order (1-indexed; nil means all pages)
	pages []int

	// Placement tunables
	config place.Config

	// Resolver override (nil means a default resolver built per run)
	resolver *anchor.Resolver

	// Saver invoked at FINALIZE (nil means the caller persists)
	saver mutate.Saver

	// Cap on unplaced entries carried in the report
	maxUnplaced int

	logger *zap.Logger
}

// defaultOptions returns the default annotation options
func defaultOptions() annotateOptions {
	return annotateOptions{
		pages:       nil,
		config:      place.DefaultConfig(),
		resolver:    nil,
		saver:       nil,
		maxUnplaced: 20,
		logger:      zap.NewNop(),
	}
}

// clone creates a deep copy of annotateOptions
func (o annotateOptions) clone() annotateOptions {
	newOpts := annotateOptions{
		config:      o.config,
		resolver:    o.resolver,
		saver:       o.saver,
		maxUnplaced: o.maxUnplaced,
		logger:      o.logger,
	}

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}
