// Copyright 2020 ConsenSys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package plonklog is the prover's structured logger, following the same
// package-level accessor shape as gnark's own internal "logger" package
// (see VolodymyrBg-gnark/internal/backend/bn254/plonk/prove.go:
// logger.Logger().With()...Logger()).
package plonklog

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	once sync.Once
	log  zerolog.Logger
)

// Logger returns the package-wide zerolog.Logger, writing timestamped
// entries to stderr. It sets no level of its own and reads no environment
// variable: verbosity follows zerolog's global level (zerolog.SetGlobalLevel),
// whose default lets debug-level entries such as the prover's round timings
// through.
func Logger() zerolog.Logger {
	once.Do(func() {
		log = zerolog.New(os.Stderr).With().Timestamp().Logger()
	})
	return log
}
