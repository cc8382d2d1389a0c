// Copyright 2026 The housefit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package session provides the interactive training session.
//
// # Overview
//
// A Session owns the house dataset, the selected optimizer and its
// hyperparameters, the cached training Run and the playback cursor.
//
// # Basic Usage
//
//	s := session.New(session.DefaultConfig())
//	if err := s.AddRandom(10); err != nil {
//	    log.Fatal(err)
//	}
//
//	run, err := s.Train()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("final loss:", run.History[len(run.History)-1].Loss)
//
//	p, err := s.Predict(120)
//	fmt.Printf("Rp %.0f\n", p.Price)
package session

import (
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/dataset"
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/normalize"
	"github.com/Virtuozs/interactive-optimization-house-price-prediction/internal/session"
)

// Session is the state of one user's training session.
type Session = session.Session

// Config configures a new Session.
type Config = session.Config

// Settings are the user-controlled hyperparameters of a run.
type Settings = session.Settings

// Run is the cached result of one optimization.
type Run = session.Run

// Prediction is a price estimate for one house size.
type Prediction = session.Prediction

// Frame is the chart data of one playback step.
type Frame = session.Frame

// Point is one (size, price) pair.
type Point = session.Point

// Sample is one observed house.
type Sample = dataset.Sample

// Stats holds the normalization constants of a run.
type Stats = normalize.Stats

// DegenerateScaleError reports a column with zero spread.
type DegenerateScaleError = normalize.DegenerateScaleError

// MinSamples is the smallest dataset a run accepts.
const MinSamples = session.MinSamples

// Common errors.
var (
	ErrInsufficientData = session.ErrInsufficientData
	ErrNotTrained       = session.ErrNotTrained
	ErrInvalidInput     = session.ErrInvalidInput
	ErrStepOutOfRange   = session.ErrStepOutOfRange
	ErrDegenerateScale  = normalize.ErrDegenerateScale
)

// DefaultConfig returns a session configuration with page defaults.
func DefaultConfig() Config {
	return session.DefaultConfig()
}

// DefaultSettings returns gradient descent, LR 0.1, 30 iterations.
func DefaultSettings() Settings {
	return session.DefaultSettings()
}

// New creates an empty session.
func New(config Config) *Session {
	return session.New(config)
}
