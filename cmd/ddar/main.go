// Copyright 2025 The geoddar Authors.
// Licensed under the Apache License, Version 2.0. See the LICENSE file for details.

// Command ddar parses a problem file in the textual form of
// spec.md section 6, runs deduction closure, and reports whether the
// problem's own goal (if any) and any extra goals passed on the
// command line now check true.
package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/geoddar/ddar/ddar"
	"github.com/geoddar/ddar/geodb"
	"github.com/geoddar/ddar/predicate"
	"github.com/geoddar/ddar/problem"
)

func main() {
	path := flag.String("problem", "", "path to a problem file (spec.md section 6 textual form)")
	goals := flag.String("goals", "", "semicolon-separated extra predicate textual forms to check after closure")
	verbose := flag.Bool("verbose", false, "print per-rule deduction_closure status")
	progress := flag.Bool("progress", false, "print one dot per outer deduction_closure iteration")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		// DeductionClosure logs its per-rule status at debug level.
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *path == "" {
		log.Fatal().Msg("ddar: -problem is required")
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatal().Err(err).Str("path", *path).Msg("ddar: failed to read problem file")
	}

	p, err := problem.Parse(string(data))
	if err != nil {
		log.Fatal().Err(err).Msg("ddar: failed to parse problem")
	}

	e := ddar.New(p.Points)
	for _, given := range p.Givens {
		if err := e.ForcePred(given); err != nil {
			log.Fatal().Err(err).Msg("ddar: failed to force a given predicate")
		}
	}

	if err := e.DeductionClosure(context.Background(), *verbose, *progress); err != nil {
		log.Fatal().Err(err).Msg("ddar: deduction closure failed")
	}
	if *progress {
		os.Stdout.WriteString("\n")
	}

	pointsByName := make(map[string]*geodb.Point, len(p.Points))
	for _, pt := range p.Points {
		pointsByName[pt.Name] = pt
	}

	if p.Goal != nil {
		reportGoal(e, "problem goal", *p.Goal)
	}
	for _, goalText := range splitNonEmpty(*goals, ";") {
		goal, err := predicate.Parse(strings.TrimSpace(goalText), pointsByName)
		if err != nil {
			log.Error().Err(err).Str("goal", goalText).Msg("ddar: failed to parse extra goal")
			continue
		}
		reportGoal(e, goalText, goal)
	}
}

func reportGoal(e *ddar.Engine, label string, goal predicate.Predicate) {
	result, err := e.CheckPred(goal)
	if err != nil {
		log.Error().Err(err).Str("goal", label).Msg("ddar: failed to check goal")
		return
	}
	log.Info().Str("goal", label).Str("result", result.String()).Msg("ddar: checked goal")
}

func splitNonEmpty(s, sep string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, sep)
}
